package sandbox

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/dop251/goja"
)

// makeH builds the element-construction primitive. A string target becomes
// an element node; a callable target (local component or mock binding) is
// invoked with (props, children).
func (p *Program) makeH() goja.Value {
	return p.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(p.vm.NewTypeError("h requires an element type"))
		}
		target := call.Argument(0)
		props := call.Argument(1)

		children := make([]interface{}, 0, len(call.Arguments))
		for _, arg := range call.Arguments[2:] {
			if arg == nil || goja.IsUndefined(arg) || goja.IsNull(arg) {
				continue
			}
			children = append(children, arg.Export())
		}

		if fn, ok := goja.AssertFunction(target); ok {
			out, err := fn(goja.Undefined(), props, p.vm.ToValue(children))
			if err != nil {
				panic(p.vm.NewGoError(err))
			}
			return out
		}

		elem := map[string]interface{}{
			"type":     target.String(),
			"children": children,
		}
		if exported := exportValue(props); exported != nil {
			elem["props"] = exported
		}
		return p.vm.ToValue(elem)
	})
}

// makeMockTable exposes every registry binding as a callable on the
// __mocks__ object the transformer aliases imports against.
func (p *Program) makeMockTable() goja.Value {
	table := p.vm.NewObject()
	for _, name := range p.runtime.registry.Names() {
		binding, _ := p.runtime.registry.Lookup(name)
		render := binding.Render
		table.Set(name, func(call goja.FunctionCall) goja.Value {
			props, _ := exportValue(call.Argument(0)).(map[string]interface{})
			if props == nil {
				props = map[string]interface{}{}
			}
			var children []interface{}
			if kids, ok := exportValue(call.Argument(1)).([]interface{}); ok {
				children = kids
			}
			return p.vm.ToValue(render(props, children))
		})
	}
	return table
}

// makeFetch builds the ambient fetch binding. The response object resolves
// synchronously; routing happens in the interception layer's transport.
func (p *Program) makeFetch() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		path := call.Argument(0).String()

		resp, err := p.runtime.fetch(path)
		if err != nil {
			panic(p.vm.NewGoError(fmt.Errorf("fetch %s: %w", path, err)))
		}
		body := resp.Body

		obj := p.vm.NewObject()
		obj.Set("ok", resp.Status >= 200 && resp.Status < 300)
		obj.Set("status", resp.Status)
		obj.Set("text", func(goja.FunctionCall) goja.Value {
			return p.vm.ToValue(string(body))
		})
		obj.Set("json", func(goja.FunctionCall) goja.Value {
			var parsed interface{}
			if err := sonic.Unmarshal(body, &parsed); err != nil {
				panic(p.vm.NewGoError(fmt.Errorf("fetch %s: invalid json: %w", path, err)))
			}
			return p.vm.ToValue(parsed)
		})
		return obj
	}
}
