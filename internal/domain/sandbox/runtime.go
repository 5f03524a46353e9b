package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/scivalidate/preview/internal/domain/mocks"
	"github.com/scivalidate/preview/internal/domain/transform"
)

// Runtime compiles rewritten component source into invocable programs.
// Every compilation gets a fresh VM: nothing survives between selections.
type Runtime struct {
	config   Config
	registry *mocks.Registry
	fetch    FetchFunc
}

// New creates a sandbox runtime over the registry and fetch capability.
func New(config Config, registry *mocks.Registry, fetch FetchFunc) *Runtime {
	return &Runtime{config: config, registry: registry, fetch: fetch}
}

// Program is one compiled component, ready to invoke exactly once.
type Program struct {
	vm      *goja.Runtime
	fn      goja.Callable
	view    string
	runtime *Runtime
	console []LogEntry
}

// Compile evaluates the rewritten text as a function of exactly four
// bindings: h, useState, useEffect and the mock table. No other scope is
// available to the component beyond the ambient fetch capability.
func (r *Runtime) Compile(result *transform.Result) (*Program, error) {
	vm := goja.New()
	vm.SetMaxCallStackSize(1024)

	p := &Program{vm: vm, view: result.View, runtime: r}

	// Node-style globals stay out of reach.
	vm.Set("require", goja.Undefined())
	vm.Set("process", goja.Undefined())
	vm.Set("module", goja.Undefined())
	vm.Set("exports", goja.Undefined())

	if r.config.EnableConsole {
		console := vm.NewObject()
		console.Set("log", p.makeConsoleFunc("log"))
		console.Set("warn", p.makeConsoleFunc("warn"))
		console.Set("error", p.makeConsoleFunc("error"))
		vm.Set("console", console)
	}

	// Timers are inert; the render loop is the only scheduler.
	vm.Set("setTimeout", func(goja.FunctionCall) goja.Value { return goja.Undefined() })
	vm.Set("setInterval", func(goja.FunctionCall) goja.Value { return goja.Undefined() })

	// fetch is deliberately ambient: any call issued anywhere in the
	// component tree goes through the intercepted client.
	vm.Set("fetch", p.makeFetch())

	wrapped := "(function(h, useState, useEffect, __mocks__) {\n" + result.Source + "\n})"
	val, err := vm.RunString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", result.View, err)
	}

	fn, ok := goja.AssertFunction(val)
	if !ok {
		return nil, fmt.Errorf("compile %s: unit did not evaluate to a function", result.View)
	}
	p.fn = fn
	return p, nil
}

// Invoke executes the compiled unit synchronously: render the view, run
// queued effects, and re-render while state changed, bounded by
// MaxPasses. The settled return value is the element tree.
func (p *Program) Invoke(ctx context.Context) (*Result, error) {
	cfg := p.runtime.config
	start := time.Now()

	timer := time.NewTimer(cfg.Timeout)
	defer timer.Stop()
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-timer.C:
			p.vm.Interrupt("execution timeout exceeded")
		case <-ctx.Done():
			p.vm.Interrupt("context cancelled")
		case <-done:
		}
	}()

	hooks := newHookState(p.vm)
	args := []goja.Value{
		p.makeH(),
		hooks.makeUseState(),
		hooks.makeUseEffect(),
		p.makeMockTable(),
	}

	var out goja.Value
	passes := 0
	for {
		passes++
		hooks.beginPass()

		val, err := p.fn(goja.Undefined(), args...)
		if err != nil {
			return nil, fmt.Errorf("invoke %s: %w", p.view, err)
		}
		out = val

		if err := hooks.runEffects(); err != nil {
			return nil, fmt.Errorf("invoke %s: effect failed: %w", p.view, err)
		}
		if !hooks.dirty || passes >= cfg.MaxPasses {
			break
		}
	}

	return &Result{
		Value:    exportValue(out),
		Console:  append([]LogEntry{}, p.console...),
		Passes:   passes,
		Duration: time.Since(start),
	}, nil
}

// makeConsoleFunc captures console output into the program.
func (p *Program) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var msg string
		for i, arg := range call.Arguments {
			if i > 0 {
				msg += " "
			}
			msg += arg.String()
		}
		p.console = append(p.console, LogEntry{Level: level, Message: msg, Time: time.Now()})
		return goja.Undefined()
	}
}

// exportValue converts a goja value to a plain Go value.
func exportValue(val goja.Value) interface{} {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}
