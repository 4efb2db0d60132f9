package domain

import "context"

// Permission represents a named capability that can be granted to API clients.
// Deleted is a soft-delete flag; deleting a permission never removes the row.
type Permission struct {
	BaseModel
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255;not null" json:"description"`
	Enabled     bool   `json:"enabled"`
	Deleted     bool   `json:"deleted"`
}

// PermissionRepository defines the data access interface for permissions.
// Absence of a record is reported as ErrNotFound, never as a generic failure.
type PermissionRepository interface {
	Count(ctx context.Context, filters Filters) (int64, error)
	List(ctx context.Context, filters Filters, p Pagination) ([]Permission, error)
	GetByID(ctx context.Context, id uint) (*Permission, error)
	Create(ctx context.Context, perm *Permission) error
	// UpdateByID merges fields into the stored record in a single conditional
	// statement and returns the post-update record.
	UpdateByID(ctx context.Context, id uint, fields map[string]any) (*Permission, error)
	// SoftDeleteByID sets the deleted flag and returns the updated record.
	// Re-deleting an already soft-deleted record succeeds.
	SoftDeleteByID(ctx context.Context, id uint) (*Permission, error)
}

// PermissionService defines the business logic interface for permissions.
type PermissionService interface {
	// ListPermissions returns the matching page of records together with a
	// pagination value carrying the total count for the same filter set.
	ListPermissions(ctx context.Context, filters Filters, p Pagination) ([]Permission, Pagination, error)
	GetPermissionByID(ctx context.Context, id uint) (*Permission, error)
	CreatePermission(ctx context.Context, name, slug, description string, enabled bool) (*Permission, error)
	UpdatePermissionByID(ctx context.Context, id uint, fields map[string]any) (*Permission, error)
	DeletePermissionByID(ctx context.Context, id uint) error
}
