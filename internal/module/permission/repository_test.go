package permission

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/mmcomponents/gateway-service/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the permissions table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Permission{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPermission(t *testing.T, repo domain.PermissionRepository, slug string, enabled bool) *domain.Permission {
	t.Helper()
	perm := &domain.Permission{
		Slug:        slug,
		Name:        "perm " + slug,
		Description: "description of " + slug,
		Enabled:     enabled,
	}
	if err := repo.Create(context.Background(), perm); err != nil {
		t.Fatalf("seed %s: %v", slug, err)
	}
	return perm
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	perm := seedPermission(t, repo, "users-read", true)
	if perm.ID == 0 {
		t.Fatal("expected storage-assigned ID after Create")
	}
	if perm.CreatedAt.IsZero() || perm.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set on Create")
	}

	got, err := repo.GetByID(ctx, perm.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Slug != "users-read" || !got.Enabled || got.Deleted {
		t.Errorf("got %+v; want slug=users-read enabled=true deleted=false", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	seedPermission(t, repo, "users-read", true)

	dup := &domain.Permission{Slug: "users-read", Name: "again", Description: "dup"}
	err := repo.Create(ctx, dup)
	if !domain.IsAlreadyExists(err) {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestCountAndList_Filters(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	seedPermission(t, repo, "users-read", true)
	seedPermission(t, repo, "users-write", true)
	seedPermission(t, repo, "billing-read", false)

	total, err := repo.Count(ctx, domain.Filters{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 3 {
		t.Errorf("unfiltered count = %d; want 3", total)
	}

	disabled, err := repo.Count(ctx, domain.Filters{"enabled": false})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if disabled != 1 {
		t.Errorf("enabled=false count = %d; want 1", disabled)
	}

	records, err := repo.List(ctx, domain.Filters{"slug": "users-write"}, domain.Pagination{PageSize: 20, PageNumber: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "users-write" {
		t.Errorf("filtered list = %+v; want single users-write record", records)
	}

	// Unknown filter keys never reach the query.
	records, err = repo.List(ctx, domain.Filters{"password": "x"}, domain.Pagination{PageSize: 20, PageNumber: 1})
	if err != nil {
		t.Fatalf("List with unknown filter: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("list with ignored filter = %d records; want 3", len(records))
	}
}

func TestList_PaginationWindow(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 41; i++ {
		seedPermission(t, repo, fmt.Sprintf("perm-%02d", i), true)
	}

	p := domain.Pagination{PageSize: 10, PageNumber: 2, SortBy: "slug"}

	total, err := repo.Count(ctx, domain.Filters{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 41 {
		t.Fatalf("count = %d; want 41", total)
	}

	counted, err := p.WithCount(total)
	if err != nil {
		t.Fatalf("WithCount: %v", err)
	}
	if snap := counted.Snapshot(); *snap.TotalPages != 5 {
		t.Errorf("totalPages = %d; want 5", *snap.TotalPages)
	}

	records, err := repo.List(ctx, domain.Filters{}, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("len(records) = %d; want 10", len(records))
	}
	// Page 2 of 10 in slug order covers records 11 through 20.
	if records[0].Slug != "perm-11" || records[9].Slug != "perm-20" {
		t.Errorf("page window = %s..%s; want perm-11..perm-20", records[0].Slug, records[9].Slug)
	}
}

func TestList_TextSearch(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	seedPermission(t, repo, "users-read", true)
	seedPermission(t, repo, "billing-read", true)

	records, err := repo.List(ctx, domain.Filters{}, domain.Pagination{PageSize: 20, PageNumber: 1, Text: "billing"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "billing-read" {
		t.Errorf("text search = %+v; want single billing-read record", records)
	}
}

func TestList_IgnoresUnknownSortField(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	seedPermission(t, repo, "users-read", true)

	records, err := repo.List(ctx, domain.Filters{}, domain.Pagination{PageSize: 20, PageNumber: 1, SortBy: "password; drop table"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d; want 1", len(records))
	}
}

func TestUpdateByID_PartialMerge(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	perm := seedPermission(t, repo, "users-read", true)

	updated, err := repo.UpdateByID(ctx, perm.ID, map[string]any{"name": "renamed"})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("name = %q; want renamed", updated.Name)
	}
	// Omitted fields keep their prior values.
	if updated.Slug != "users-read" || updated.Description != "description of users-read" || !updated.Enabled {
		t.Errorf("unexpected merge result: %+v", updated)
	}
}

func TestUpdateByID_NotFound(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))

	_, err := repo.UpdateByID(context.Background(), 999, map[string]any{"name": "x"})
	if !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestUpdateByID_EmptyFieldsReturnsRecord(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	perm := seedPermission(t, repo, "users-read", true)

	got, err := repo.UpdateByID(ctx, perm.ID, map[string]any{})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if got.Slug != "users-read" {
		t.Errorf("slug = %q; want users-read", got.Slug)
	}
}

func TestUpdateByID_DuplicateSlug(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	seedPermission(t, repo, "users-read", true)
	other := seedPermission(t, repo, "users-write", true)

	_, err := repo.UpdateByID(ctx, other.ID, map[string]any{"slug": "users-read"})
	if !domain.IsAlreadyExists(err) {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestSoftDeleteByID(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))
	ctx := context.Background()

	perm := seedPermission(t, repo, "users-read", true)

	deleted, err := repo.SoftDeleteByID(ctx, perm.ID)
	if err != nil {
		t.Fatalf("SoftDeleteByID: %v", err)
	}
	if !deleted.Deleted {
		t.Error("expected deleted flag to be set")
	}

	// The row is still there, just flagged.
	got, err := repo.GetByID(ctx, perm.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if !got.Deleted {
		t.Error("expected stored record to carry deleted=true")
	}

	// Re-deleting succeeds.
	if _, err := repo.SoftDeleteByID(ctx, perm.ID); err != nil {
		t.Errorf("second SoftDeleteByID: %v", err)
	}
}

func TestSoftDeleteByID_NotFound(t *testing.T) {
	repo := NewPermissionRepository(setupTestDB(t))

	_, err := repo.SoftDeleteByID(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
