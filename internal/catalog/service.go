package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbakken/labstock-backend/pkg/db/models"
	pkgerrors "github.com/mbakken/labstock-backend/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service exposes the catalog read surface.
type Service interface {
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, input ListItemsInput) (*ItemListResult, error)
	ListDepartments(ctx context.Context) ([]ReferenceDTO, error)
	ListCategories(ctx context.Context) ([]ReferenceDTO, error)
	ListLocations(ctx context.Context) ([]ReferenceDTO, error)
	ListSuppliers(ctx context.Context) ([]SupplierDTO, error)
}

// ListItemsInput holds the validated list query.
type ListItemsInput struct {
	Search string
	Limit  int
	Offset int
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog read service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return toItemDTO(item), nil
}

func (s *service) ListItems(ctx context.Context, input ListItemsInput) (*ItemListResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.ListItems(ctx, input.Search, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing items")
	}

	result := &ItemListResult{
		Items:  make([]ItemDTO, 0, len(items)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i := range items {
		result.Items = append(result.Items, *toItemDTO(&items[i]))
	}
	return result, nil
}

func (s *service) ListDepartments(ctx context.Context) ([]ReferenceDTO, error) {
	depts, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing departments")
	}
	out := make([]ReferenceDTO, 0, len(depts))
	for i := range depts {
		out = append(out, *toReferenceDTOFromDept(&depts[i]))
	}
	return out, nil
}

func (s *service) ListCategories(ctx context.Context) ([]ReferenceDTO, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	out := make([]ReferenceDTO, 0, len(cats))
	for i := range cats {
		out = append(out, *toReferenceDTOFromCat(&cats[i]))
	}
	return out, nil
}

func (s *service) ListLocations(ctx context.Context) ([]ReferenceDTO, error) {
	locs, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing locations")
	}
	out := make([]ReferenceDTO, 0, len(locs))
	for i := range locs {
		out = append(out, *toReferenceDTOFromLoc(&locs[i]))
	}
	return out, nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]SupplierDTO, error) {
	sups, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing suppliers")
	}
	out := make([]SupplierDTO, 0, len(sups))
	for i := range sups {
		out = append(out, toSupplierDTO(&sups[i]))
	}
	return out, nil
}

// MigrationModels lists every table the catalog owns, in FK order.
// Test databases auto-migrate from this list.
func MigrationModels() []any {
	return []any{
		&models.Department{},
		&models.Category{},
		&models.StorageLocation{},
		&models.Supplier{},
		&models.Item{},
		&models.SupplierItem{},
	}
}
