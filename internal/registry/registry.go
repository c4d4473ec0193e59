package registry

import (
	"sort"
	"sync"

	"github.com/studyhive/collab-service/internal/domain"
)

// Registry is the authoritative in-memory store of document rooms:
// documentID -> connectionID -> MemberPresence. State lives for the process
// lifetime and resets on restart; a deployment with multiple processes needs
// a shared store instead.
//
// The registry is constructed explicitly and injected into the hub, so tests
// get an isolated instance per case.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[string]domain.MemberPresence
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]map[string]domain.MemberPresence),
	}
}

// Register inserts or replaces the presence entry keyed by connection id,
// creating the room if absent. Re-registering the same connection overwrites.
func (r *Registry) Register(documentID string, p domain.MemberPresence) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[documentID]
	if !ok {
		room = make(map[string]domain.MemberPresence)
		r.rooms[documentID] = room
	}
	room[p.ConnectionID] = p
}

// Remove deletes the entry if present. Missing room or member is a no-op.
// An emptied room is pruned.
func (r *Registry) Remove(documentID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[documentID]
	if !ok {
		return
	}
	delete(room, connectionID)
	if len(room) == 0 {
		delete(r.rooms, documentID)
	}
}

// Members returns a snapshot of the room's presence entries, ordered by join
// time ascending. Consumers must not rely on the ordering.
func (r *Registry) Members(documentID string) []domain.MemberPresence {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[documentID]
	if !ok {
		return nil
	}

	members := make([]domain.MemberPresence, 0, len(room))
	for _, p := range room {
		members = append(members, p)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].JoinedAt != members[j].JoinedAt {
			return members[i].JoinedAt < members[j].JoinedAt
		}
		return members[i].ConnectionID < members[j].ConnectionID
	})
	return members
}

// RoomCount returns the number of active rooms.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Rooms returns a diagnostic summary of all active rooms. Used for
// operational inspection only, never for protocol decisions.
func (r *Registry) Rooms() []domain.RoomStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]domain.RoomStatus, 0, len(r.rooms))
	for documentID, room := range r.rooms {
		users := make([]string, 0, len(room))
		for _, p := range room {
			users = append(users, p.UserID)
		}
		sort.Strings(users)
		statuses = append(statuses, domain.RoomStatus{
			DocumentID: documentID,
			UserCount:  len(room),
			Users:      users,
		})
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].DocumentID < statuses[j].DocumentID
	})
	return statuses
}
