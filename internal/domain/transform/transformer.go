// Package transform rewrites raw component source for sandbox execution:
// imports become mock-table aliases, the default export is stripped, and
// an explicit invocation of the target view is appended.
package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/scivalidate/preview/internal/domain/mocks"
	"github.com/scivalidate/preview/internal/domain/source"
)

// Known statement shapes. Rewriting is textual on purpose: the preview
// dialect only allows single-line imports and one default export, so a
// full parse buys nothing. Imports outside these shapes are left intact
// and fail later inside the sandbox, where the boundary catches them.
var (
	importRe   = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+(?:\{([^}]*)\}|([A-Za-z_$][A-Za-z0-9_$]*))[ \t]+from[ \t]+['"][^'"]*['"];?[ \t]*\r?\n?`)
	exportFnRe = regexp.MustCompile(`(?m)^([ \t]*)export[ \t]+default[ \t]+function[ \t]+([A-Za-z_$][A-Za-z0-9_$]*)`)
	exportRefRe = regexp.MustCompile(`(?m)^[ \t]*export[ \t]+default[ \t]+([A-Za-z_$][A-Za-z0-9_$]*)[ \t]*;?[ \t]*\r?\n?`)
)

// Result is a rewritten component ready for compilation.
type Result struct {
	Source string   // rewritten text, compiled by the sandbox
	View   string   // target view function name
	Bound  []string // registry names bound into the compiled scope
}

// Transformer rewrites component source so its dependencies resolve
// against the mock registry and the target view is invoked explicitly.
type Transformer struct {
	registry *mocks.Registry
	defaults map[string]string
}

// New creates a transformer over the registry. Default props are the
// placeholder inputs every previewed view is invoked with.
func New(registry *mocks.Registry) *Transformer {
	return &Transformer{
		registry: registry,
		defaults: map[string]string{
			"facultyId": "42",
			"entityId":  "42",
		},
	}
}

// WithDefaults overrides the default invocation props.
func (t *Transformer) WithDefaults(defaults map[string]string) *Transformer {
	t.defaults = defaults
	return t
}

// Rewrite strips imports and the default export, binds mocked dependencies
// under their expected local names, and appends the view invocation.
func (t *Transformer) Rewrite(comp source.Component) (*Result, error) {
	body := comp.Source

	var bound []string
	var missing []string
	seen := make(map[string]bool)

	body = importRe.ReplaceAllStringFunc(body, func(stmt string) string {
		groups := importRe.FindStringSubmatch(stmt)
		for _, name := range importNames(groups) {
			if seen[name] {
				continue
			}
			seen[name] = true
			if t.registry.Has(name) {
				bound = append(bound, name)
			} else {
				missing = append(missing, name)
			}
		}
		return ""
	})

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &Error{
			Component: comp.ID,
			Reason:    "no mock binding for imported dependency",
			Missing:   missing,
		}
	}

	view := ""
	if m := exportFnRe.FindStringSubmatch(body); m != nil {
		view = m[2]
		body = exportFnRe.ReplaceAllString(body, "${1}function ${2}")
	} else if m := exportRefRe.FindStringSubmatch(body); m != nil {
		view = m[1]
		body = exportRefRe.ReplaceAllString(body, "")
	} else {
		return nil, &Error{
			Component: comp.ID,
			Reason:    "no default export found",
		}
	}

	funcRe := regexp.MustCompile(`\bfunction[ \t]+` + regexp.QuoteMeta(view) + `[ \t]*\(`)
	if !funcRe.MatchString(body) {
		return nil, &Error{
			Component: comp.ID,
			Fragment:  view,
			Reason:    "target view definition not found",
		}
	}

	var b strings.Builder
	b.WriteString("'use strict';\n")
	for _, name := range bound {
		fmt.Fprintf(&b, "const %s = __mocks__[%q];\n", name, name)
	}
	b.WriteString(body)
	fmt.Fprintf(&b, "\nreturn %s(%s);\n", view, t.defaultProps())

	return &Result{Source: b.String(), View: view, Bound: bound}, nil
}

// importNames extracts the local names an import statement introduces.
func importNames(groups []string) []string {
	if groups[2] != "" {
		return []string{groups[2]}
	}
	var names []string
	for _, part := range strings.Split(groups[1], ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// defaultProps renders the invocation props literal with stable key order.
func (t *Transformer) defaultProps() string {
	keys := make([]string, 0, len(t.defaults))
	for k := range t.defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{ ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %q", k, t.defaults[k])
	}
	b.WriteString(" }")
	return b.String()
}
