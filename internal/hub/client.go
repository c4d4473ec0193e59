package hub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/studyhive/collab-service/internal/config"
	"github.com/studyhive/collab-service/internal/domain"
	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/pkg/log"
)

// Client is one authorized websocket connection. Identity fields come from
// the session record the connection gate resolved at upgrade time.
type Client struct {
	ID     string
	UserID string
	Name   string
	Image  string

	Hub   *Hub
	Conn  *websocket.Conn
	Send  chan []byte
	State *domain.ConnState

	config config.WebSocketConfig
}

func NewClient(id string, identity gate.SessionRecord, h *Hub, conn *websocket.Conn, cfg config.WebSocketConfig) *Client {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 256
	}
	return &Client{
		ID:     id,
		UserID: identity.UserID,
		Name:   identity.Name,
		Image:  identity.Image,
		Hub:    h,
		Conn:   conn,
		Send:   make(chan []byte, cfg.SendBuffer),
		State:  domain.NewConnState(),
		config: cfg,
	}
}

// ReadPump reads frames from the connection and dispatches them to handler.
// onClose runs when the transport drops; it is responsible for disconnect
// cleanup (the hub guarantees that cleanup is idempotent).
func (c *Client) ReadPump(handler func(*Client, []byte), onClose func(*Client)) {
	defer func() {
		onClose(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l := log.L()
				l.Warn().Err(err).Str(log.FieldConnectionID, c.ID).Msg("websocket read error")
			}
			break
		}

		handler(c, message)
	}
}

// WritePump drains the send queue onto the connection and keeps the
// transport alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage marshals and enqueues a message for this connection. Delivery
// is best-effort: a full send queue drops the message rather than blocking
// the caller.
func (c *Client) SendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	select {
	case c.Send <- data:
	default:
	}
	return nil
}
