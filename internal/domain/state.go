package domain

import "sync"

// ConnPhase is the lifecycle phase of one websocket connection.
type ConnPhase int

const (
	// PhaseConnected: authorized, not joined to any document.
	PhaseConnected ConnPhase = iota
	// PhaseJoined: member of exactly one document room.
	PhaseJoined
	// PhaseClosed: terminal, cleanup already ran.
	PhaseClosed
)

// ConnState is the explicit per-connection state machine. A connection is a
// member of at most one document at a time; joining another document leaves
// the previous one first.
type ConnState struct {
	mu         sync.Mutex
	phase      ConnPhase
	documentID string
}

func NewConnState() *ConnState {
	return &ConnState{phase: PhaseConnected}
}

// Join transitions to PhaseJoined for documentID and reports the previously
// joined document, if any. Returns ok=false when the connection is closed.
func (s *ConnState) Join(documentID string) (previous string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return "", false
	}
	previous = s.documentID
	s.phase = PhaseJoined
	s.documentID = documentID
	return previous, true
}

// Leave transitions back to PhaseConnected if the connection is joined to
// documentID. Leaving a document the connection is not in is a no-op.
func (s *ConnState) Leave(documentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseJoined || s.documentID != documentID {
		return false
	}
	s.phase = PhaseConnected
	s.documentID = ""
	return true
}

// Close transitions to PhaseClosed. It reports the document the connection
// occupied, and first=false on every call after the first so disconnect
// cleanup runs exactly once.
func (s *ConnState) Close() (documentID string, wasJoined, first bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return "", false, false
	}
	documentID = s.documentID
	wasJoined = s.phase == PhaseJoined
	s.phase = PhaseClosed
	s.documentID = ""
	return documentID, wasJoined, true
}

// Document returns the currently joined document id, empty if none.
func (s *ConnState) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseJoined {
		return ""
	}
	return s.documentID
}

// Phase returns the current lifecycle phase.
func (s *ConnState) Phase() ConnPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}
