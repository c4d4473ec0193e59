package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedStore(ttl time.Duration) (*SessionStore, *time.Time) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	s := NewSessionStore(ttl)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestAuthorizeFreshRecord(t *testing.T) {
	s, _ := newClockedStore(30 * time.Minute)

	s.Put("alice", "Alice", "https://img/alice.png")

	rec, err := s.Authorize("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.UserID)
	assert.Equal(t, "Alice", rec.Name)
	assert.Equal(t, "https://img/alice.png", rec.Image)
}

func TestAuthorizeUnknownUser(t *testing.T) {
	s, _ := newClockedStore(30 * time.Minute)

	_, err := s.Authorize("ghost")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizeStaleRecordRejectedAndEvicted(t *testing.T) {
	s, now := newClockedStore(30 * time.Minute)

	s.Put("alice", "Alice", "")
	*now = now.Add(31 * time.Minute)

	_, err := s.Authorize("alice")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Stale record is evicted on lookup.
	_, ok := s.Get("alice")
	assert.False(t, ok)
}

func TestPutRefreshesFreshnessWindow(t *testing.T) {
	s, now := newClockedStore(30 * time.Minute)

	s.Put("alice", "Alice", "")
	*now = now.Add(29 * time.Minute)
	s.Put("alice", "Alice", "")
	*now = now.Add(29 * time.Minute)

	_, err := s.Authorize("alice")
	assert.NoError(t, err)
}

func TestZeroTTLDisablesExpiry(t *testing.T) {
	s, now := newClockedStore(0)

	s.Put("alice", "Alice", "")
	*now = now.Add(1000 * time.Hour)

	_, err := s.Authorize("alice")
	assert.NoError(t, err)
}

func TestCount(t *testing.T) {
	s, _ := newClockedStore(time.Hour)

	s.Put("alice", "Alice", "")
	s.Put("bob", "Bob", "")
	s.Put("alice", "Alice Again", "") // overwrite, not a new record

	assert.Equal(t, 2, s.Count())
}
