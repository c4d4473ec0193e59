package gate

import (
	"errors"
	"sync"
	"time"
)

// ErrUnauthorized is returned when no fresh authenticated session exists for
// the claimed user id.
var ErrUnauthorized = errors.New("no fresh authenticated session for user")

// SessionRecord is server-held proof that a user identity was authenticated
// by a prior HTTP request, before any real-time connection is accepted.
type SessionRecord struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// SessionStore maps user id to SessionRecord. The auth middleware writes and
// refreshes records; the connection gate only reads them. Records older than
// ttl no longer authorize and are evicted lazily on lookup. A ttl of zero
// disables expiry.
type SessionStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	records map[string]SessionRecord

	now func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:     ttl,
		records: make(map[string]SessionRecord),
		now:     time.Now,
	}
}

// Put inserts or refreshes the session record for a user.
func (s *SessionStore) Put(userID, name, image string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = SessionRecord{
		UserID:       userID,
		Name:         name,
		Image:        image,
		LastActiveAt: s.now(),
	}
}

// Authorize decides whether a connection may act as the claimed user id.
// It succeeds only if a record exists and is within the freshness window.
// The store performs no credential verification itself; it binds the
// transport connection to an identity validated upstream.
func (s *SessionStore) Authorize(userID string) (SessionRecord, error) {
	s.mu.RLock()
	rec, ok := s.records[userID]
	s.mu.RUnlock()

	if !ok {
		return SessionRecord{}, ErrUnauthorized
	}
	if s.ttl > 0 && s.now().Sub(rec.LastActiveAt) > s.ttl {
		s.mu.Lock()
		// Re-check under the write lock: a refresh may have raced the read.
		if cur, ok := s.records[userID]; ok && s.now().Sub(cur.LastActiveAt) > s.ttl {
			delete(s.records, userID)
		} else if ok {
			s.mu.Unlock()
			return cur, nil
		}
		s.mu.Unlock()
		return SessionRecord{}, ErrUnauthorized
	}
	return rec, nil
}

// Get returns the record for a user without freshness checks.
func (s *SessionStore) Get(userID string) (SessionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	return rec, ok
}

// Count returns the number of stored session records.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
