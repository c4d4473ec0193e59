package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive/collab-service/internal/domain"
	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/internal/middleware"
	"github.com/studyhive/collab-service/pkg/response"
)

// HTTPHandler exposes the collaboration layer's HTTP surface: session
// registration and the read-only diagnostic view.
type HTTPHandler struct {
	snapshot func() domain.CollabStatus
	sessions *gate.SessionStore
	auth     *middleware.AuthMiddleware
}

func NewHTTPHandler(snapshot func() domain.CollabStatus, sessions *gate.SessionStore, auth *middleware.AuthMiddleware) *HTTPHandler {
	return &HTTPHandler{
		snapshot: snapshot,
		sessions: sessions,
		auth:     auth,
	}
}

// RegisterRoutes registers all collaboration routes.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine, ws *WSHandler) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api/v1")
	{
		api.GET("/collab/ws", ws.HandleWebSocket)
		api.GET("/collab/status", h.auth.RequireAuth(), h.GetStatus)
		api.POST("/sessions", h.auth.RequireAuth(), h.RegisterSession)
	}
}

// GetStatus returns the diagnostic snapshot: whether the socket server is
// initialized, the active rooms with their members, and the room count.
// Query-only; it never mutates protocol state.
func (h *HTTPHandler) GetStatus(c *gin.Context) {
	response.Success(c, h.snapshot())
}

// RegisterSession returns the caller's current session record. The auth
// middleware has already written/refreshed the record by the time this runs,
// so the endpoint is an explicit way to register interest in the transport
// before opening a websocket.
func (h *HTTPHandler) RegisterSession(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	record, ok := h.sessions.Get(userID)
	if !ok {
		response.InternalError(c, "session record missing")
		return
	}

	response.Success(c, record)
}

// HealthCheck handles GET /health.
func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
