package permission

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmcomponents/gateway-service/internal/domain"
)

// permissionService implements domain.PermissionService.
type permissionService struct {
	repo domain.PermissionRepository
}

// NewPermissionService creates a PermissionService with the given repository.
func NewPermissionService(repo domain.PermissionRepository) domain.PermissionService {
	return &permissionService{repo: repo}
}

// ListPermissions issues the count and the fetch concurrently — they are
// independent reads — and awaits both; either failure fails the whole
// operation with no partial result. The total count is attached to the
// returned pagination value.
func (s *permissionService) ListPermissions(ctx context.Context, filters domain.Filters, p domain.Pagination) ([]domain.Permission, domain.Pagination, error) {
	var (
		total   int64
		records []domain.Permission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filters)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.repo.List(gctx, filters, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, p, err
	}

	counted, err := p.WithCount(total)
	if err != nil {
		return nil, p, domain.NewAppError(domain.CodeInternal, "invalid pagination configuration", err)
	}

	return records, counted, nil
}

// GetPermissionByID retrieves a permission by id.
func (s *permissionService) GetPermissionByID(ctx context.Context, id uint) (*domain.Permission, error) {
	return s.repo.GetByID(ctx, id)
}

// CreatePermission builds a Permission from the given fields and persists it.
// Slug uniqueness is enforced by the storage layer and surfaces as
// AlreadyExists.
func (s *permissionService) CreatePermission(ctx context.Context, name, slug, description string, enabled bool) (*domain.Permission, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if slug == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "slug is required", nil)
	}
	if description == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "description is required", nil)
	}

	perm := &domain.Permission{
		Name:        name,
		Slug:        slug,
		Description: description,
		Enabled:     enabled,
	}

	if err := s.repo.Create(ctx, perm); err != nil {
		return nil, err
	}

	return perm, nil
}

// UpdatePermissionByID merges the supplied fields into the stored record.
// The repository's conditional update distinguishes "nothing to update"
// (NotFound) from a storage failure without a separate existence read.
func (s *permissionService) UpdatePermissionByID(ctx context.Context, id uint, fields map[string]any) (*domain.Permission, error) {
	return s.repo.UpdateByID(ctx, id, fields)
}

// DeletePermissionByID soft-deletes a permission. Deleting an id that does
// not exist is NotFound; re-deleting an already soft-deleted record succeeds.
func (s *permissionService) DeletePermissionByID(ctx context.Context, id uint) error {
	_, err := s.repo.SoftDeleteByID(ctx, id)
	return err
}
