package mocks

import "sort"

// RenderFunc is a substitute component implementation. It receives the
// props object the previewed source passed and returns an element node in
// the sandbox's map representation.
type RenderFunc func(props map[string]interface{}, children []interface{}) map[string]interface{}

// Binding pairs a dependency name with its substitute implementation.
type Binding struct {
	Name        string
	Description string
	Render      RenderFunc
}

// Registry is the static name to substitute table consulted by the
// transformer and installed into the sandbox scope. Built once at process
// start; lookups have no side effects and the table is never mutated
// during a preview session.
type Registry struct {
	entries map[string]Binding
}

// NewRegistry builds the registry with every built-in substitute.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Binding)}
	for _, b := range builtins() {
		r.entries[b.Name] = b
	}
	return r
}

// Lookup returns the binding for a dependency name.
func (r *Registry) Lookup(name string) (Binding, bool) {
	b, ok := r.entries[name]
	return b, ok
}

// Has reports whether a dependency name is mocked.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns all mocked dependency names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered substitutes.
func (r *Registry) Len() int {
	return len(r.entries)
}
