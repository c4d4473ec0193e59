package service

import (
	"context"

	"github.com/studyhive/collab-service/internal/hub"
)

// PresenceService runs the per-connection presence protocol once a
// connection has passed the gate.
type PresenceService interface {
	// HandleJoin authorizes the connection for the document and moves it
	// into the document's room.
	HandleJoin(ctx context.Context, c *hub.Client, documentID string) error

	// HandleLeave removes the connection from the document's room.
	// Idempotent: leaving a room the connection is not in does nothing.
	HandleLeave(ctx context.Context, c *hub.Client, documentID string) error

	// HandleDisconnect runs the leave effect for the current room, if any.
	// Fires exactly once per connection.
	HandleDisconnect(ctx context.Context, c *hub.Client) error
}

// DocumentChecker reports whether a mindmap document exists. The presence
// layer never reads or writes document content; it only verifies the id.
type DocumentChecker interface {
	Exists(ctx context.Context, documentID string) (bool, error)
}
