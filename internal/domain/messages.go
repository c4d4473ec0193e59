package domain

// WebSocket message types from client.
const (
	MsgTypeJoin  = "join"
	MsgTypeLeave = "leave"
	MsgTypePing  = "ping"
)

// WebSocket message types to client.
const (
	MsgTypePresenceUpdate = "presence-update"
	MsgTypeError          = "error"
	MsgTypePong           = "pong"
)

// Error codes
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

type JoinMessage struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId"`
}

type LeaveMessage struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId"`
}

// Server -> Client messages

// PresenceUpdateMessage carries the full member list of a room. It doubles
// as the join acknowledgment: the joining connection receives it too.
type PresenceUpdateMessage struct {
	Type       string           `json:"type"`
	DocumentID string           `json:"documentId"`
	Members    []MemberPresence `json:"members"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewPresenceUpdate(documentID string, members []MemberPresence) *PresenceUpdateMessage {
	return &PresenceUpdateMessage{
		Type:       MsgTypePresenceUpdate,
		DocumentID: documentID,
		Members:    members,
	}
}

func NewErrorMessage(code, message string) *ErrorMessage {
	return &ErrorMessage{
		Type:    MsgTypeError,
		Code:    code,
		Message: message,
	}
}
