package mindmap

import (
	"context"
	"errors"

	"github.com/studyhive/collab-service/internal/audit"
)

var (
	// ErrMindmapNotFound is the service-level not-found error.
	ErrMindmapNotFound = errors.New("mindmap not found")
	// ErrNotOwner is returned when a caller mutates someone else's mindmap.
	ErrNotOwner = errors.New("you are not the owner of this mindmap")
)

// Service owns mindmap document persistence. It doubles as the presence
// layer's DocumentChecker: joins are only allowed for documents that exist.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new mindmap owned by the caller.
func (s *Service) Create(ctx context.Context, ownerID, ownerName string, req *CreateRequest) (*Mindmap, error) {
	m := &Mindmap{
		OwnerID:   ownerID,
		OwnerName: ownerName,
		Title:     req.Title,
		Nodes:     req.Nodes,
		Edges:     req.Edges,
		Tags:      req.Tags,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	audit.LogWithDocument(ctx, audit.ActionMindmapCreate, ownerID, m.ID, "mindmap created")
	return m, nil
}

// Get returns a mindmap by id.
func (s *Service) Get(ctx context.Context, id string) (*Mindmap, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrMindmapNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListMine returns the caller's mindmaps, most recently updated first.
func (s *Service) ListMine(ctx context.Context, ownerID string) ([]Mindmap, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update applies a partial content update. Only the owner may update.
func (s *Service) Update(ctx context.Context, userID, id string, req *UpdateRequest) (*Mindmap, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.OwnerID != userID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Nodes != nil {
		m.Nodes = *req.Nodes
	}
	if req.Edges != nil {
		m.Edges = *req.Edges
	}
	if req.Tags != nil {
		m.Tags = req.Tags
	}

	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrMindmapNotFound
		}
		return nil, err
	}
	return m, nil
}

// Delete removes a mindmap. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if m.OwnerID != userID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrMindmapNotFound
		}
		return err
	}

	audit.LogWithDocument(ctx, audit.ActionMindmapDelete, userID, id, "mindmap deleted")
	return nil
}

// Exists implements the presence layer's DocumentChecker.
func (s *Service) Exists(ctx context.Context, documentID string) (bool, error) {
	return s.repo.Exists(ctx, documentID)
}
