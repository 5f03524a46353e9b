package preview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scivalidate/preview/internal/domain/intercept"
	"github.com/scivalidate/preview/internal/domain/source"
	"github.com/scivalidate/preview/internal/logging"
)

// ErrSuperseded reports that a newer selection replaced this one while
// its source fetch was in flight; the late result was discarded.
var ErrSuperseded = errors.New("selection superseded by a newer one")

// Metrics receives preview outcomes. Declared here so the domain does not
// pin the monitoring implementation.
type Metrics interface {
	RecordPreview(component, outcome string, duration time.Duration)
	SessionActive(active bool)
}

// Controller orchestrates preview sessions: it owns interception
// install/teardown ordering, the single-active-session invariant, and the
// stale-result guard for superseded selections.
type Controller struct {
	mu          sync.Mutex
	supplier    source.Supplier
	interceptor *intercept.Interceptor
	boundary    *Boundary
	active      *Session
	log         *logging.Logger
	metrics     Metrics
}

// NewController creates the session controller.
func NewController(supplier source.Supplier, interceptor *intercept.Interceptor, boundary *Boundary, log *logging.Logger) *Controller {
	return &Controller{
		supplier:    supplier,
		interceptor: interceptor,
		boundary:    boundary,
		log:         log,
	}
}

// WithMetrics attaches a metrics sink.
func (c *Controller) WithMetrics(m Metrics) *Controller {
	c.metrics = m
	return c
}

// Select starts a session for the component identifier: uninstall any
// previous interception, install fresh, fetch the source, run it through
// the boundary, and hand back the session. The returned session is always
// Rendered or Errored with a readable diagnostic; the only errors are a
// superseded selection and a broken install sequence.
func (c *Controller) Select(ctx context.Context, id string) (*Session, error) {
	c.mu.Lock()
	if c.active != nil {
		c.interceptor.Uninstall()
	}

	sess := &Session{
		ID:        uuid.New(),
		Component: id,
		State:     StateLoading,
		StartedAt: time.Now(),
	}
	c.active = sess

	if err := c.interceptor.Install(); err != nil {
		// Install after uninstall cannot collide unless sequencing broke.
		c.active = nil
		c.mu.Unlock()
		return nil, fmt.Errorf("install interception: %w", err)
	}
	if c.metrics != nil {
		c.metrics.SessionActive(true)
	}
	c.mu.Unlock()

	c.log.Info("preview session started",
		zap.String("component", id),
		zap.String("session", sess.ID.String()),
	)

	// Suspension point: the supplier may be slow or fail. Everything after
	// it re-checks that this session is still the active one.
	comp, fetchErr := c.supplier.Fetch(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil || c.active.ID != sess.ID {
		c.log.Info("discarding superseded session",
			zap.String("component", id),
			zap.String("session", sess.ID.String()),
		)
		return nil, ErrSuperseded
	}

	if fetchErr != nil {
		sess.State = StateErrored
		sess.Diagnostic = fmt.Sprintf("failed to load component %q: %v", id, fetchErr)
		sess.Element = diagnosticElement(id, sess.Diagnostic)
		c.record(sess)
		return sess, nil
	}

	outcome := c.boundary.Run(ctx, comp, func(s State) { sess.State = s })
	sess.State = outcome.State
	sess.Element = outcome.Element
	sess.Diagnostic = outcome.Diagnostic
	sess.Console = outcome.Console
	sess.Passes = outcome.Passes

	c.record(sess)
	return sess, nil
}

// Teardown ends the active session and removes interception. Safe to call
// in any state and any number of times; the host's unmount hook calls it
// unconditionally.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.interceptor.Uninstall()
	if c.active != nil {
		c.log.Info("preview session torn down",
			zap.String("component", c.active.Component),
			zap.String("session", c.active.ID.String()),
		)
	}
	c.active = nil
	if c.metrics != nil {
		c.metrics.SessionActive(false)
	}
}

// Current returns a snapshot of the active session, or an idle one.
func (c *Controller) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active.Snapshot()
}

func (c *Controller) record(sess *Session) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordPreview(sess.Component, string(sess.State), time.Since(sess.StartedAt))
}
