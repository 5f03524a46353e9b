package sandbox

import (
	"strconv"

	"github.com/dop251/goja"
)

// hookState backs useState/useEffect for one invocation. Slots are keyed
// by call order, so hook calls must not move between passes (the same
// rule the source dialect already lives under).
type hookState struct {
	vm     *goja.Runtime
	states []goja.Value
	cursor int
	dirty  bool

	queued       []goja.Callable
	prevDeps     [][]goja.Value
	hadDeps      []bool
	effectCursor int
}

func newHookState(vm *goja.Runtime) *hookState {
	return &hookState{vm: vm}
}

// beginPass resets per-pass bookkeeping; state slots persist.
func (h *hookState) beginPass() {
	h.cursor = 0
	h.effectCursor = 0
	h.dirty = false
	h.queued = h.queued[:0]
}

func (h *hookState) makeUseState() goja.Value {
	return h.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		slot := h.cursor
		h.cursor++
		if slot >= len(h.states) {
			h.states = append(h.states, call.Argument(0))
		}

		setter := h.vm.ToValue(func(set goja.FunctionCall) goja.Value {
			next := set.Argument(0)
			if !h.states[slot].StrictEquals(next) {
				h.states[slot] = next
				h.dirty = true
			}
			return goja.Undefined()
		})
		return h.vm.NewArray(h.states[slot], setter)
	})
}

func (h *hookState) makeUseEffect() goja.Value {
	return h.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(h.vm.NewTypeError("useEffect requires a function"))
		}
		slot := h.effectCursor
		h.effectCursor++

		deps, hasDeps := exportDeps(h.vm, call.Argument(1))
		run := true
		if hasDeps && slot < len(h.prevDeps) && h.hadDeps[slot] {
			run = depsChanged(h.prevDeps[slot], deps)
		}

		if slot < len(h.prevDeps) {
			h.prevDeps[slot] = deps
			h.hadDeps[slot] = hasDeps
		} else {
			h.prevDeps = append(h.prevDeps, deps)
			h.hadDeps = append(h.hadDeps, hasDeps)
		}

		if run {
			h.queued = append(h.queued, fn)
		}
		return goja.Undefined()
	})
}

// runEffects executes the effects queued in the last pass. Setters called
// inside an effect mark the state dirty and trigger another pass.
func (h *hookState) runEffects() error {
	for _, fn := range h.queued {
		if _, err := fn(goja.Undefined()); err != nil {
			return err
		}
	}
	return nil
}

// exportDeps reads an optional dependency array argument.
func exportDeps(vm *goja.Runtime, val goja.Value) ([]goja.Value, bool) {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, false
	}
	obj := val.ToObject(vm)
	length := int(obj.Get("length").ToInteger())
	deps := make([]goja.Value, 0, length)
	for i := 0; i < length; i++ {
		deps = append(deps, obj.Get(strconv.Itoa(i)))
	}
	return deps, true
}

func depsChanged(prev, next []goja.Value) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if prev[i] == nil || next[i] == nil {
			return true
		}
		if !prev[i].StrictEquals(next[i]) {
			return true
		}
	}
	return false
}
