package domain

import "time"

// BaseModel is the common base struct for all domain models.
// The ID field is the storage-assigned identifier; json tags are the single
// translation boundary between the storage shape and the external API shape.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filters is a set of exact-match constraints keyed by field name.
// A key absent from the map means "no constraint on that field".
type Filters map[string]any
