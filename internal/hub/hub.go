package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/studyhive/collab-service/internal/domain"
	"github.com/studyhive/collab-service/internal/registry"
	"github.com/studyhive/collab-service/pkg/log"
)

// Hub connects live websocket clients to the session registry. One mutex
// serializes every join/leave/disconnect so that registry mutation and the
// resulting presence broadcast form a single critical section: members of a
// room observe broadcasts in the order the mutations were applied, and no
// broadcast carries a half-updated member list.
type Hub struct {
	mu       sync.Mutex
	clients  map[string]*Client // connectionID -> client
	registry *registry.Registry
}

func NewHub(reg *registry.Registry) *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		registry: reg,
	}
}

// Register makes a connection known to the hub. The connection is not a
// member of any room yet.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	l := log.L()
	l.Debug().
		Str(log.FieldConnectionID, c.ID).
		Str(log.FieldUserID, c.UserID).
		Msg("client registered")
}

// Join moves the connection into the document's room. If the connection is
// joined elsewhere it leaves that room first, with its own presence update
// to the old room. The new room's full member list (joiner included) is
// broadcast as the join acknowledgment.
func (h *Hub) Join(c *Client, documentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	previous, ok := c.State.Join(documentID)
	if !ok {
		return // connection already closed
	}

	if previous != "" && previous != documentID {
		h.registry.Remove(previous, c.ID)
		h.broadcastLocked(previous)
	}

	h.registry.Register(documentID, domain.MemberPresence{
		UserID:       c.UserID,
		ConnectionID: c.ID,
		Name:         c.Name,
		Image:        c.Image,
		JoinedAt:     time.Now().UnixMilli(),
	})
	h.broadcastLocked(documentID)

	l := log.L()
	l.Info().
		Str(log.FieldConnectionID, c.ID).
		Str(log.FieldUserID, c.UserID).
		Str(log.FieldDocumentID, documentID).
		Msg("client joined document")
}

// Leave removes the connection from the document's room and notifies the
// remaining members. Leaving a room the connection is not in is a no-op.
func (h *Hub) Leave(c *Client, documentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !c.State.Leave(documentID) {
		return
	}

	h.registry.Remove(documentID, c.ID)
	h.broadcastLocked(documentID)

	l := log.L()
	l.Info().
		Str(log.FieldConnectionID, c.ID).
		Str(log.FieldUserID, c.UserID).
		Str(log.FieldDocumentID, documentID).
		Msg("client left document")
}

// Disconnect runs the leave effect for whatever room the connection occupies
// and removes it from the hub. Safe to call multiple times; cleanup runs
// exactly once.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	documentID, wasJoined, first := c.State.Close()
	if !first {
		return
	}

	if wasJoined {
		h.registry.Remove(documentID, c.ID)
		h.broadcastLocked(documentID)
	}

	delete(h.clients, c.ID)
	close(c.Send)

	l := log.L()
	l.Debug().
		Str(log.FieldConnectionID, c.ID).
		Str(log.FieldUserID, c.UserID).
		Msg("client disconnected")
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcastLocked sends the room's current member list to every member.
// Callers must hold h.mu. Enqueueing is non-blocking: a member whose send
// queue is full or already closed misses the update, which is acceptable
// for best-effort presence.
func (h *Hub) broadcastLocked(documentID string) {
	members := h.registry.Members(documentID)

	data, err := json.Marshal(domain.NewPresenceUpdate(documentID, members))
	if err != nil {
		l := log.L()
		l.Error().Err(err).Str(log.FieldDocumentID, documentID).Msg("failed to marshal presence update")
		return
	}

	for _, m := range members {
		client, ok := h.clients[m.ConnectionID]
		if !ok {
			continue
		}
		select {
		case client.Send <- data:
		default:
		}
	}
}
