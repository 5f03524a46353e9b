package http

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/scivalidate/preview/internal/domain/intercept"
	"github.com/scivalidate/preview/internal/domain/preview"
	"github.com/scivalidate/preview/internal/domain/source"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	catalog     *source.Catalog
	controller  *preview.Controller
	interceptor *intercept.Interceptor
}

// NewHandlers creates a new handler set.
func NewHandlers(catalog *source.Catalog, controller *preview.Controller, interceptor *intercept.Interceptor) *Handlers {
	return &Handlers{
		catalog:     catalog,
		controller:  controller,
		interceptor: interceptor,
	}
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Component Previewer",
		"version": "0.3.0",
	})
}

// Health reports previewer state.
func (h *Handlers) Health(c *gin.Context) {
	session := h.controller.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"session":      session.State,
		"interception": h.interceptor.Installed(),
		"components":   len(h.catalog.List()),
	})
}

// ListComponents returns the previewable catalog, source included so the
// host page can show what it is previewing.
func (h *Handlers) ListComponents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"components": h.catalog.List()})
}

// Preview selects a component and returns the session verdict: a rendered
// element tree or a diagnostic. Failures inside the pipeline never reach
// this handler as errors.
func (h *Handlers) Preview(c *gin.Context) {
	id := c.Param("id")

	session, err := h.controller.Select(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, preview.ErrSuperseded) {
			c.JSON(http.StatusConflict, gin.H{"error": "selection superseded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.writeSession(c, session.Snapshot())
}

// CurrentPreview returns the active session, or an idle one.
func (h *Handlers) CurrentPreview(c *gin.Context) {
	h.writeSession(c, h.controller.Current())
}

// TeardownPreview ends the active session. The host page calls this from
// its unmount hook; repeated calls are harmless.
func (h *Handlers) TeardownPreview(c *gin.Context) {
	h.controller.Teardown()
	c.Status(http.StatusNoContent)
}

// writeSession serializes a session with sonic; element trees dominate
// response size here.
func (h *Handlers) writeSession(c *gin.Context, session preview.Session) {
	data, err := sonic.Marshal(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode session"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
