package importer

import (
	"context"
	"errors"
	"io"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mbakken/labstock-backend/internal/catalog"
	"github.com/mbakken/labstock-backend/pkg/db/models"
	"github.com/mbakken/labstock-backend/pkg/logger"
)

func newTestRepo(t *testing.T) *catalog.Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(catalog.MigrationModels()...); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return catalog.NewRepository(conn)
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestResolverCreatesReferenceEntitiesOnMiss(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolver(repo, newTestLogger())
	ctx := context.Background()

	id, err := resolver.Resolve(ctx, RefDepartment, "Microbiology")
	if err != nil {
		t.Fatalf("resolve department: %v", err)
	}
	if id == nil {
		t.Fatal("expected department to be created")
	}

	dept, err := repo.FindDepartmentByName(ctx, "microbiology")
	if err != nil || dept == nil {
		t.Fatalf("created department not found: %v", err)
	}
	if dept.Code == "" {
		t.Fatal("expected a generated code")
	}

	again, err := resolver.Resolve(ctx, RefDepartment, "MICROBIOLOGY")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if again == nil || *again != *id {
		t.Fatal("expected case-insensitive resolution to the same entity")
	}
}

func TestResolverCategoryGetsImportNote(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolver(repo, newTestLogger())
	ctx := context.Background()

	if _, err := resolver.Resolve(ctx, RefCategory, "Solvents"); err != nil {
		t.Fatalf("resolve category: %v", err)
	}
	cat, err := repo.FindCategoryByName(ctx, "Solvents")
	if err != nil || cat == nil {
		t.Fatalf("created category not found: %v", err)
	}
	if cat.Description == nil || *cat.Description == "" {
		t.Fatal("expected auto-created category to carry an origin note")
	}
}

func TestResolverNeverCreatesSuppliers(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolver(repo, newTestLogger())
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, RefSupplier, "Ghost Labs")
	if !errors.Is(err, ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved, got %v", err)
	}

	sups, err := repo.ListSuppliers(ctx)
	if err != nil {
		t.Fatalf("list suppliers: %v", err)
	}
	if len(sups) != 0 {
		t.Fatalf("resolver must not create suppliers, found %d", len(sups))
	}
}

func TestResolverResolvesExistingSupplier(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolver(repo, newTestLogger())
	ctx := context.Background()

	created, err := repo.CreateSupplier(ctx, &models.Supplier{Name: "VWR"})
	if err != nil {
		t.Fatalf("seed supplier: %v", err)
	}

	id, err := resolver.Resolve(ctx, RefSupplier, "vwr")
	if err != nil {
		t.Fatalf("resolve supplier: %v", err)
	}
	if id == nil || *id != created.ID {
		t.Fatal("expected case-insensitive supplier match")
	}
}

func TestResolverEmptyNameResolvesToNil(t *testing.T) {
	resolver := NewResolver(newTestRepo(t), newTestLogger())
	id, err := resolver.Resolve(context.Background(), RefLocation, "   ")
	if err != nil || id != nil {
		t.Fatalf("expected nil/nil for blank name, got %v/%v", id, err)
	}
}

func TestResolverPolicyIsExplicit(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolverWithPolicy(repo, newTestLogger(), map[RefKind]bool{
		RefDepartment: false,
	})

	_, err := resolver.Resolve(context.Background(), RefDepartment, "Virology")
	if !errors.Is(err, ErrNotResolved) {
		t.Fatalf("expected resolve-only department to fail, got %v", err)
	}
}
