package permission

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mmcomponents/gateway-service/internal/domain"
	"github.com/mmcomponents/gateway-service/internal/pkg"
)

// Allowed fields for sorting, filtering, and text search in list queries.
var (
	allowedSortFields   = []string{"id", "name", "slug", "enabled", "deleted", "created_at", "updated_at"}
	allowedFilterFields = []string{"name", "slug", "enabled"}
	textSearchFields    = []string{"name", "slug", "description"}
)

// permissionRepository implements domain.PermissionRepository using GORM.
type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a PermissionRepository backed by the given
// GORM database.
func NewPermissionRepository(db *gorm.DB) domain.PermissionRepository {
	return &permissionRepository{db: db}
}

// Count returns the number of permissions matching the filter set, ignoring
// pagination.
func (r *permissionRepository) Count(ctx context.Context, filters domain.Filters) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Permission{}).
		Scopes(pkg.Filter(filters, allowedFilterFields)).
		Count(&total).Error
	if err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

// List returns the page of permissions matching the filter set, sorted,
// skipped, and limited per the pagination value.
func (r *permissionRepository) List(ctx context.Context, filters domain.Filters, p domain.Pagination) ([]domain.Permission, error) {
	var perms []domain.Permission
	err := r.db.WithContext(ctx).
		Scopes(
			pkg.Filter(filters, allowedFilterFields),
			pkg.TextSearch(p, textSearchFields),
			pkg.Sort(p, allowedSortFields),
			pkg.Paginate(p),
		).
		Find(&perms).Error
	if err != nil {
		return nil, mapError(err)
	}
	return perms, nil
}

// GetByID retrieves a permission by its identifier.
func (r *permissionRepository) GetByID(ctx context.Context, id uint) (*domain.Permission, error) {
	var perm domain.Permission
	if err := r.db.WithContext(ctx).First(&perm, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &perm, nil
}

// Create inserts a new permission, assigning its identifier and timestamps.
func (r *permissionRepository) Create(ctx context.Context, perm *domain.Permission) error {
	if err := r.db.WithContext(ctx).Create(perm).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// UpdateByID merges fields into the stored record with a single conditional
// UPDATE, so the mutation only happens if the record still exists. Zero rows
// affected means the id does not exist.
func (r *permissionRepository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (*domain.Permission, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&domain.Permission{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// SoftDeleteByID sets the deleted flag with the same conditional UPDATE
// pattern. The predicate matches on id only, so re-deleting an already
// soft-deleted record succeeds.
func (r *permissionRepository) SoftDeleteByID(ctx context.Context, id uint) (*domain.Permission, error) {
	return r.UpdateByID(ctx, id, map[string]any{"deleted": true})
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "slug already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. Not all GORM dialectors translate driver-level errors to
// gorm.ErrDuplicatedKey (the pure-Go SQLite driver among them).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
