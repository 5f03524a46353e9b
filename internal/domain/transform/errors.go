package transform

import (
	"fmt"
	"strings"
)

// Error describes a failed rewrite: the component it happened in, the
// offending fragment, and for missing dependencies the names that had no
// substitute in the registry.
type Error struct {
	Component string
	Fragment  string
	Reason    string
	Missing   []string
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("transform %s: %s: %s", e.Component, e.Reason, strings.Join(e.Missing, ", "))
	}
	if e.Fragment != "" {
		return fmt.Sprintf("transform %s: %s: %s", e.Component, e.Reason, e.Fragment)
	}
	return fmt.Sprintf("transform %s: %s", e.Component, e.Reason)
}
