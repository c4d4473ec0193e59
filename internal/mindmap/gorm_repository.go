package mindmap

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyhive/collab-service/pkg/log"
)

// GormRepository implements Repository using GORM.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, m *Mindmap) error {
	l := log.Ctx(ctx)

	m.ID = uuid.New().String()

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		l.Error().Err(err).Msg("failed to create mindmap in db")
		return err
	}

	l.Debug().Str(log.FieldDocumentID, m.ID).Msg("mindmap created in db")
	return nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*Mindmap, error) {
	var m Mindmap
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(result.Error).Str(log.FieldDocumentID, id).Msg("failed to get mindmap by id")
		return nil, result.Error
	}
	return &m, nil
}

func (r *GormRepository) ListByOwner(ctx context.Context, ownerID string) ([]Mindmap, error) {
	var maps []Mindmap
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&maps).Error
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list mindmaps from db")
		return nil, err
	}
	return maps, nil
}

func (r *GormRepository) Update(ctx context.Context, m *Mindmap) error {
	result := r.db.WithContext(ctx).Model(&Mindmap{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"title": m.Title,
		"nodes": m.Nodes,
		"edges": m.Edges,
		"tags":  m.Tags,
	})
	if result.Error != nil {
		l := log.Ctx(ctx)
		l.Error().Err(result.Error).Str(log.FieldDocumentID, m.ID).Msg("failed to update mindmap")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Mindmap{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Mindmap{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
