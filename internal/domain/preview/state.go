package preview

import (
	"time"

	"github.com/google/uuid"

	"github.com/scivalidate/preview/internal/domain/sandbox"
	"github.com/scivalidate/preview/internal/shared/element"
)

// State is one step of a session's lifecycle:
// idle -> loading -> transformed -> compiled -> rendered, or errored at
// any point. The next selection starts over from idle.
type State string

const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"
	StateTransformed State = "transformed"
	StateCompiled    State = "compiled"
	StateRendered    State = "rendered"
	StateErrored     State = "errored"
)

// Session is one selection's full lifecycle from interception install
// through render or diagnostic. At most one session is active at a time.
type Session struct {
	ID         uuid.UUID          `json:"id"`
	Component  string             `json:"component"`
	State      State              `json:"state"`
	Element    *element.Element   `json:"element,omitempty"`
	Diagnostic string             `json:"diagnostic,omitempty"`
	Console    []sandbox.LogEntry `json:"-"`
	Passes     int                `json:"passes,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
}

// Snapshot returns a copy safe to hand to transport layers.
func (s *Session) Snapshot() Session {
	if s == nil {
		return Session{State: StateIdle}
	}
	copy := *s
	return copy
}
