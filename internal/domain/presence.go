package domain

// MemberPresence is one user's active participation in one document room.
// A user with two open tabs holds two entries, one per connection.
type MemberPresence struct {
	UserID       string `json:"userId"`
	ConnectionID string `json:"connectionId"`
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
	JoinedAt     int64  `json:"joinedAt"` // unix milliseconds
}

// RoomStatus is the diagnostic summary of one active document room.
type RoomStatus struct {
	DocumentID string   `json:"documentId"`
	UserCount  int      `json:"userCount"`
	Users      []string `json:"users"`
}

// CollabStatus is the read-only operational view of the collaboration layer.
type CollabStatus struct {
	SocketServerInitialized bool         `json:"socketServerInitialized"`
	ActiveSessions          []RoomStatus `json:"activeSessions"`
	SessionsCount           int          `json:"sessionsCount"`
}
