package mindmap

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a mindmap id resolves to nothing.
var ErrNotFound = errors.New("mindmap not found")

// Repository abstracts mindmap storage.
type Repository interface {
	Create(ctx context.Context, m *Mindmap) error
	GetByID(ctx context.Context, id string) (*Mindmap, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Mindmap, error)
	Update(ctx context.Context, m *Mindmap) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
