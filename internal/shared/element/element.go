// Package element defines the renderable tree handed to the host page.
package element

import (
	"fmt"
	"sort"
	"strings"
)

// TextType marks a leaf node carrying literal text.
const TextType = "#text"

// Element is one node of a renderable tree. Trees are produced by the
// sandbox, serialized to JSON, and mounted by the host page.
type Element struct {
	Type     string                 `json:"type"`
	Props    map[string]interface{} `json:"props,omitempty"`
	Children []*Element             `json:"children,omitempty"`
	Text     string                 `json:"text,omitempty"`
}

// New builds an element node.
func New(typ string, props map[string]interface{}, children ...*Element) *Element {
	return &Element{Type: typ, Props: props, Children: children}
}

// Text builds a literal text node.
func Text(s string) *Element {
	return &Element{Type: TextType, Text: s}
}

// Textf builds a formatted text node.
func Textf(format string, args ...interface{}) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// Append adds children and returns the element for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// ContainsText reports whether any text node in the tree contains needle.
func (e *Element) ContainsText(needle string) bool {
	if e == nil {
		return false
	}
	if e.Type == TextType && strings.Contains(e.Text, needle) {
		return true
	}
	for _, v := range e.Props {
		if s, ok := v.(string); ok && strings.Contains(s, needle) {
			return true
		}
	}
	for _, child := range e.Children {
		if child.ContainsText(needle) {
			return true
		}
	}
	return false
}

// Find returns the first node of the given type in depth-first order.
func (e *Element) Find(typ string) *Element {
	if e == nil {
		return nil
	}
	if e.Type == typ {
		return e
	}
	for _, child := range e.Children {
		if found := child.Find(typ); found != nil {
			return found
		}
	}
	return nil
}

// FromValue decodes a value exported from the sandbox VM into an element
// tree. Maps with a "type" key become nodes, scalars become text leaves,
// arrays are flattened into their parent.
func FromValue(v interface{}) (*Element, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("element is nil")
	case string:
		return Text(val), nil
	case bool:
		return Textf("%v", val), nil
	case int64:
		return Textf("%d", val), nil
	case float64:
		return Text(formatNumber(val)), nil
	case map[string]interface{}:
		return fromMap(val)
	default:
		return nil, fmt.Errorf("unsupported element value %T", v)
	}
}

func fromMap(m map[string]interface{}) (*Element, error) {
	typ, ok := m["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("element map missing type")
	}
	if typ == TextType {
		text, _ := m["text"].(string)
		return Text(text), nil
	}

	elem := &Element{Type: typ}
	if props, ok := m["props"].(map[string]interface{}); ok && len(props) > 0 {
		elem.Props = props
	}

	raw, ok := m["children"].([]interface{})
	if !ok {
		return elem, nil
	}
	for _, child := range raw {
		if child == nil {
			continue
		}
		// Arrays produced by list-rendering collapse into the parent.
		if nested, ok := child.([]interface{}); ok {
			for _, n := range nested {
				if n == nil {
					continue
				}
				decoded, err := FromValue(n)
				if err != nil {
					return nil, err
				}
				elem.Children = append(elem.Children, decoded)
			}
			continue
		}
		decoded, err := FromValue(child)
		if err != nil {
			return nil, err
		}
		elem.Children = append(elem.Children, decoded)
	}
	return elem, nil
}

// formatNumber renders whole floats without a trailing ".0" so fixture ids
// survive the VM's number representation.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// PropKeys returns the element's prop names in sorted order.
func (e *Element) PropKeys() []string {
	keys := make([]string, 0, len(e.Props))
	for k := range e.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
