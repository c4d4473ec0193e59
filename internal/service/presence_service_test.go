package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive/collab-service/internal/config"
	"github.com/studyhive/collab-service/internal/domain"
	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/internal/hub"
	"github.com/studyhive/collab-service/internal/registry"
	"github.com/studyhive/collab-service/internal/service"
)

type fakeDocs struct {
	existing map[string]bool
}

func (f *fakeDocs) Exists(_ context.Context, documentID string) (bool, error) {
	return f.existing[documentID], nil
}

type fixture struct {
	registry *registry.Registry
	hub      *hub.Hub
	sessions *gate.SessionStore
	service  service.PresenceService
}

func newFixture(docs service.DocumentChecker) *fixture {
	reg := registry.New()
	h := hub.NewHub(reg)
	sessions := gate.NewSessionStore(30 * time.Minute)
	return &fixture{
		registry: reg,
		hub:      h,
		sessions: sessions,
		service:  service.NewPresenceService(h, sessions, docs),
	}
}

func (f *fixture) newClient(connID, userID string) *hub.Client {
	rec, _ := f.sessions.Get(userID)
	if rec.UserID == "" {
		rec = gate.SessionRecord{UserID: userID, Name: "user " + userID}
	}
	c := hub.NewClient(connID, rec, f.hub, nil, config.WebSocketConfig{SendBuffer: 16})
	f.hub.Register(c)
	return c
}

func lastMessage(t *testing.T, c *hub.Client) (string, []byte) {
	t.Helper()

	var last []byte
	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				goto done
			}
			last = data
		default:
			goto done
		}
	}
done:
	require.NotNil(t, last, "expected at least one message")
	var base domain.BaseMessage
	require.NoError(t, json.Unmarshal(last, &base))
	return base.Type, last
}

func TestJoinWithoutSessionRecordIsRejected(t *testing.T) {
	f := newFixture(nil)
	c := f.newClient("c1", "alice") // no session record registered

	err := f.service.HandleJoin(context.Background(), c, "mindmap-1")
	require.Error(t, err)

	msgType, data := lastMessage(t, c)
	assert.Equal(t, domain.MsgTypeError, msgType)
	var errMsg domain.ErrorMessage
	require.NoError(t, json.Unmarshal(data, &errMsg))
	assert.Equal(t, domain.ErrCodeUnauthorized, errMsg.Code)

	// No room state was created by the rejected join.
	assert.Equal(t, 0, f.registry.RoomCount())
}

func TestJoinUnknownDocumentIsRejected(t *testing.T) {
	f := newFixture(&fakeDocs{existing: map[string]bool{"mindmap-1": true}})
	f.sessions.Put("alice", "Alice", "")
	c := f.newClient("c1", "alice")

	require.NoError(t, f.service.HandleJoin(context.Background(), c, "mindmap-missing"))

	msgType, data := lastMessage(t, c)
	assert.Equal(t, domain.MsgTypeError, msgType)
	var errMsg domain.ErrorMessage
	require.NoError(t, json.Unmarshal(data, &errMsg))
	assert.Equal(t, domain.ErrCodeNotFound, errMsg.Code)
	assert.Equal(t, 0, f.registry.RoomCount())
}

func TestJoinEmptyDocumentIDIsBadRequest(t *testing.T) {
	f := newFixture(nil)
	f.sessions.Put("alice", "Alice", "")
	c := f.newClient("c1", "alice")

	require.NoError(t, f.service.HandleJoin(context.Background(), c, ""))

	msgType, data := lastMessage(t, c)
	assert.Equal(t, domain.MsgTypeError, msgType)
	var errMsg domain.ErrorMessage
	require.NoError(t, json.Unmarshal(data, &errMsg))
	assert.Equal(t, domain.ErrCodeBadRequest, errMsg.Code)
}

func TestJoinSucceedsWithFreshSession(t *testing.T) {
	f := newFixture(&fakeDocs{existing: map[string]bool{"mindmap-1": true}})
	f.sessions.Put("alice", "Alice", "")
	c := f.newClient("c1", "alice")

	require.NoError(t, f.service.HandleJoin(context.Background(), c, "mindmap-1"))

	msgType, data := lastMessage(t, c)
	assert.Equal(t, domain.MsgTypePresenceUpdate, msgType)
	var update domain.PresenceUpdateMessage
	require.NoError(t, json.Unmarshal(data, &update))
	assert.Equal(t, "mindmap-1", update.DocumentID)
	require.Len(t, update.Members, 1)
	assert.Equal(t, "alice", update.Members[0].UserID)
	assert.Equal(t, "c1", update.Members[0].ConnectionID)
}

func TestLeaveThenDisconnectCleansUpOnce(t *testing.T) {
	f := newFixture(nil)
	f.sessions.Put("alice", "Alice", "")
	f.sessions.Put("bob", "Bob", "")
	a := f.newClient("c1", "alice")
	b := f.newClient("c2", "bob")

	ctx := context.Background()
	require.NoError(t, f.service.HandleJoin(ctx, a, "mindmap-1"))
	require.NoError(t, f.service.HandleJoin(ctx, b, "mindmap-1"))

	require.NoError(t, f.service.HandleLeave(ctx, a, "mindmap-1"))
	// Disconnect after explicit leave must not mutate the room again.
	require.NoError(t, f.service.HandleDisconnect(ctx, a))
	require.NoError(t, f.service.HandleDisconnect(ctx, a))

	members := f.registry.Members("mindmap-1")
	require.Len(t, members, 1)
	assert.Equal(t, "bob", members[0].UserID)
}

func TestJoinSecondDocumentLeavesFirst(t *testing.T) {
	f := newFixture(nil)
	f.sessions.Put("alice", "Alice", "")
	c := f.newClient("c1", "alice")

	ctx := context.Background()
	require.NoError(t, f.service.HandleJoin(ctx, c, "doc-a"))
	require.NoError(t, f.service.HandleJoin(ctx, c, "doc-b"))

	assert.Empty(t, f.registry.Members("doc-a"))
	require.Len(t, f.registry.Members("doc-b"), 1)
}
