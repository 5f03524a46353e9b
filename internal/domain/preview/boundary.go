package preview

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scivalidate/preview/internal/domain/sandbox"
	"github.com/scivalidate/preview/internal/domain/source"
	"github.com/scivalidate/preview/internal/domain/transform"
	"github.com/scivalidate/preview/internal/logging"
	"github.com/scivalidate/preview/internal/shared/element"
)

// Outcome is the boundary's verdict on one pipeline run. There is no
// error channel: failure is a diagnostic element, never a propagated
// exception.
type Outcome struct {
	State      State
	Element    *element.Element
	Diagnostic string
	Console    []sandbox.LogEntry
	Passes     int
}

// Boundary wraps the transform -> compile -> invoke pipeline and converts
// every failure into a diagnostic view the host can mount.
type Boundary struct {
	transformer *transform.Transformer
	runtime     *sandbox.Runtime
	log         *logging.Logger
}

// NewBoundary creates the fault isolation boundary.
func NewBoundary(transformer *transform.Transformer, runtime *sandbox.Runtime, log *logging.Logger) *Boundary {
	return &Boundary{transformer: transformer, runtime: runtime, log: log}
}

// Run executes the pipeline for one component. observe is called on each
// state transition; it may be nil. Run never returns an error and never
// panics outward.
func (b *Boundary) Run(ctx context.Context, comp source.Component, observe func(State)) (out *Outcome) {
	if observe == nil {
		observe = func(State) {}
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("preview pipeline panicked",
				zap.String("component", comp.ID),
				zap.Any("panic", r),
			)
			out = b.errored(comp.ID, fmt.Sprintf("preview failed: %v", r))
		}
	}()

	result, err := b.transformer.Rewrite(comp)
	if err != nil {
		b.log.Warn("transform failed", zap.String("component", comp.ID), zap.Error(err))
		return b.errored(comp.ID, err.Error())
	}
	observe(StateTransformed)

	program, err := b.runtime.Compile(result)
	if err != nil {
		b.log.Warn("compile failed", zap.String("component", comp.ID), zap.Error(err))
		return b.errored(comp.ID, err.Error())
	}
	observe(StateCompiled)

	res, err := program.Invoke(ctx)
	if err != nil {
		b.log.Warn("invoke failed", zap.String("component", comp.ID), zap.Error(err))
		return b.errored(comp.ID, err.Error())
	}

	elem, err := element.FromValue(res.Value)
	if err != nil {
		return b.errored(comp.ID, fmt.Sprintf("view did not produce a renderable element: %v", err))
	}

	return &Outcome{
		State:   StateRendered,
		Element: elem,
		Console: res.Console,
		Passes:  res.Passes,
	}
}

// errored builds the diagnostic outcome. Diagnostic text is never empty.
func (b *Boundary) errored(componentID, msg string) *Outcome {
	if msg == "" {
		msg = "preview failed"
	}
	return &Outcome{
		State:      StateErrored,
		Element:    diagnosticElement(componentID, msg),
		Diagnostic: msg,
	}
}

// diagnosticElement is the fixed error view. Construction cannot fail; if
// anything else in the boundary does, this is still what the host gets.
func diagnosticElement(componentID, msg string) *element.Element {
	return element.New("diagnostic",
		map[string]interface{}{"component": componentID},
		element.Text(msg),
	)
}
