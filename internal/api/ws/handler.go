package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/scivalidate/preview/internal/domain/preview"
	"github.com/scivalidate/preview/internal/infrastructure/monitoring"
	"github.com/scivalidate/preview/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the host page may be served from anywhere
	},
}

// Message is a client frame on the preview stream.
type Message struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Handler manages preview WebSocket connections. Each connection drives
// the single preview session; closing it is the host unmounting.
type Handler struct {
	controller *preview.Controller
	log        *logging.Logger
	metrics    *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler.
func NewHandler(controller *preview.Controller, log *logging.Logger, metrics *monitoring.Metrics) *Handler {
	return &Handler{controller: controller, log: log, metrics: metrics}
}

// HandleConnection handles WebSocket upgrade and messages.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnected()
		defer h.metrics.WSDisconnected()
	}

	// Connection teardown is the host unmount hook: interception must
	// never outlive the page driving it.
	defer h.controller.Teardown()

	h.send(conn, gin.H{"type": "system", "message": "connected to component previewer"})

	reqCtx := c.Request.Context()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("websocket read ended", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case "select":
			h.handleSelect(conn, msg.ID, reqCtx)
		case "teardown":
			h.controller.Teardown()
			h.send(conn, gin.H{"type": "state", "state": preview.StateIdle})
		case "ping":
			h.send(conn, gin.H{"type": "pong"})
		default:
			h.send(conn, gin.H{"type": "error", "message": "unknown message type " + msg.Type})
		}
	}
}

func (h *Handler) handleSelect(conn *websocket.Conn, id string, ctx context.Context) {
	h.send(conn, gin.H{"type": "state", "state": preview.StateLoading, "component": id})

	session, err := h.controller.Select(ctx, id)
	if err != nil {
		if errors.Is(err, preview.ErrSuperseded) {
			// A newer selection on this connection already pushed its own
			// result; stay quiet.
			return
		}
		h.send(conn, gin.H{"type": "error", "message": err.Error()})
		return
	}

	snapshot := session.Snapshot()
	h.send(conn, gin.H{"type": "state", "state": snapshot.State, "component": snapshot.Component})
	if snapshot.State == preview.StateRendered {
		h.send(conn, gin.H{"type": "rendered", "component": snapshot.Component, "element": snapshot.Element})
		return
	}
	h.send(conn, gin.H{"type": "diagnostic", "component": snapshot.Component, "message": snapshot.Diagnostic, "element": snapshot.Element})
}

func (h *Handler) send(conn *websocket.Conn, payload interface{}) {
	if err := conn.WriteJSON(payload); err != nil {
		h.log.Debug("websocket write failed", zap.Error(err))
	}
}
