package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/studyhive/collab-service/internal/config"
	"github.com/studyhive/collab-service/internal/domain"
	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/internal/hub"
	"github.com/studyhive/collab-service/internal/service"
	"github.com/studyhive/collab-service/pkg/log"
	"github.com/studyhive/collab-service/pkg/response"
)

// WSHandler upgrades inbound connections and runs the presence message loop.
type WSHandler struct {
	hub      *hub.Hub
	service  service.PresenceService
	sessions *gate.SessionStore
	wsCfg    config.WebSocketConfig
	upgrader websocket.Upgrader
}

func NewWSHandler(h *hub.Hub, svc service.PresenceService, sessions *gate.SessionStore, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:      h,
		service:  svc,
		sessions: sessions,
		wsCfg:    wsCfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket gates the claimed identity against the session store and,
// on success, upgrades the connection. A connection with no fresh session
// record is refused before any room state exists.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.BadRequest(c, "user_id is required")
		return
	}

	record, err := h.sessions.Authorize(userID)
	if err != nil {
		response.Unauthorized(c, "no authenticated session for user")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), record, h.hub, conn, h.wsCfg)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleMessage, h.onDisconnect)
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	ctx := context.Background()
	l := log.L()

	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid message format"))
		return
	}

	switch base.Type {
	case domain.MsgTypeJoin:
		var msg domain.JoinMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid join message"))
			return
		}
		if err := h.service.HandleJoin(ctx, client, msg.DocumentID); err != nil {
			l.Warn().Err(err).Str(log.FieldConnectionID, client.ID).Msg("join failed")
		}

	case domain.MsgTypeLeave:
		var msg domain.LeaveMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid leave message"))
			return
		}
		if err := h.service.HandleLeave(ctx, client, msg.DocumentID); err != nil {
			l.Warn().Err(err).Str(log.FieldConnectionID, client.ID).Msg("leave failed")
		}

	case domain.MsgTypePing:
		client.SendMessage(map[string]string{"type": domain.MsgTypePong})

	default:
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "unknown message type"))
	}
}

func (h *WSHandler) onDisconnect(client *hub.Client) {
	if err := h.service.HandleDisconnect(context.Background(), client); err != nil {
		l := log.L()
		l.Warn().Err(err).Str(log.FieldConnectionID, client.ID).Msg("disconnect cleanup failed")
	}
}
