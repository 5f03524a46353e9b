package source

import (
	"context"
	"fmt"
)

// Component is the raw text of one previewable component, immutable once
// fetched. Selecting a different identifier replaces it wholesale.
type Component struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Supplier hands out component source text for an identifier. The catalog
// is the production supplier; tests substitute slow or failing ones.
type Supplier interface {
	Fetch(ctx context.Context, id string) (Component, error)
}

// Catalog holds the built-in component sources keyed by identifier.
type Catalog struct {
	components map[string]Component
	order      []string
}

// NewCatalog builds the catalog of previewable components.
func NewCatalog() *Catalog {
	c := &Catalog{components: make(map[string]Component)}
	for _, comp := range builtinComponents() {
		c.components[comp.ID] = comp
		c.order = append(c.order, comp.ID)
	}
	return c
}

// Fetch returns the component source for id.
func (c *Catalog) Fetch(_ context.Context, id string) (Component, error) {
	comp, ok := c.components[id]
	if !ok {
		return Component{}, fmt.Errorf("unknown component %q", id)
	}
	return comp, nil
}

// List returns all components in registration order, source included.
func (c *Catalog) List() []Component {
	out := make([]Component, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.components[id])
	}
	return out
}
