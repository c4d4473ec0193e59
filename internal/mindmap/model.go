package mindmap

import (
	"time"

	"gorm.io/gorm"

	"github.com/studyhive/collab-service/pkg/database"
)

// Mindmap is the GORM model for the mindmaps table. Nodes and Edges are
// opaque JSON documents owned by the organizer frontend; the collaboration
// layer never interprets them.
type Mindmap struct {
	ID        string               `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID   string               `gorm:"type:varchar(36);index;not null" json:"ownerId"`
	OwnerName string               `gorm:"type:varchar(100);not null" json:"ownerName"`
	Title     string               `gorm:"type:varchar(200);not null" json:"title"`
	Nodes     string               `gorm:"type:text" json:"nodes"`
	Edges     string               `gorm:"type:text" json:"edges"`
	Tags      database.StringArray `gorm:"type:text" json:"tags"`
	CreatedAt time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt       `gorm:"index" json:"-"`
}

// TableName specifies the table name for Mindmap.
func (Mindmap) TableName() string {
	return "mindmaps"
}

// CreateRequest is the payload for creating a mindmap.
type CreateRequest struct {
	Title string   `json:"title" binding:"required,max=200"`
	Nodes string   `json:"nodes"`
	Edges string   `json:"edges"`
	Tags  []string `json:"tags"`
}

// UpdateRequest is the payload for updating a mindmap's content.
type UpdateRequest struct {
	Title *string  `json:"title,omitempty"`
	Nodes *string  `json:"nodes,omitempty"`
	Edges *string  `json:"edges,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}
