package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mbakken/labstock-backend/internal/catalog"
	"github.com/mbakken/labstock-backend/pkg/db/models"
	"github.com/mbakken/labstock-backend/pkg/enums"
	"github.com/mbakken/labstock-backend/pkg/logger"
)

// RefKind names a reference-entity kind the resolver can handle.
type RefKind string

const (
	RefDepartment RefKind = "department"
	RefCategory   RefKind = "category"
	RefLocation   RefKind = "location"
	RefSupplier   RefKind = "supplier"
)

// ErrNotResolved is returned when a resolve-only kind has no match. The
// coordinator escalates it for suppliers, because pricing must never attach
// to a supplier that does not exist.
var ErrNotResolved = errors.New("reference not resolved")

const codeRetryAttempts = 5

const importedCategoryNote = "Created automatically during catalog import"

// Resolver turns textual references into entity ids. The create-on-miss
// policy is explicit per kind: departments, categories, and locations are
// created lazily, suppliers never are.
type Resolver struct {
	repo         *catalog.Repository
	logg         *logger.Logger
	createOnMiss map[RefKind]bool

	// Per-batch cache so a name created by one row is observed by the next
	// without a second lookup.
	cache map[RefKind]map[string]uuid.UUID
}

// NewResolver builds a resolver with the default asymmetric policy.
func NewResolver(repo *catalog.Repository, logg *logger.Logger) *Resolver {
	return NewResolverWithPolicy(repo, logg, map[RefKind]bool{
		RefDepartment: true,
		RefCategory:   true,
		RefLocation:   true,
		RefSupplier:   false,
	})
}

// NewResolverWithPolicy builds a resolver with an explicit per-kind policy.
func NewResolverWithPolicy(repo *catalog.Repository, logg *logger.Logger, policy map[RefKind]bool) *Resolver {
	return &Resolver{
		repo:         repo,
		logg:         logg,
		createOnMiss: policy,
		cache:        map[RefKind]map[string]uuid.UUID{},
	}
}

// Resolve maps a name to an entity id for the given kind. Empty names
// resolve to nil. A miss on a create-on-miss kind triggers creation; a
// creation failure degrades to nil rather than an error, since
// categorization is best-effort. A miss on a resolve-only kind returns
// ErrNotResolved.
func (r *Resolver) Resolve(ctx context.Context, kind RefKind, name string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(name)
	if id, ok := r.cache[kind][cacheKey]; ok {
		return &id, nil
	}

	id, err := r.lookup(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	if id != nil {
		r.remember(kind, cacheKey, *id)
		return id, nil
	}

	if !r.createOnMiss[kind] {
		return nil, fmt.Errorf("%w: %s %q", ErrNotResolved, kind, name)
	}

	created, err := r.create(ctx, kind, name)
	if err != nil {
		if r.logg != nil {
			r.logg.Warn(ctx, fmt.Sprintf("could not create %s %q: %v", kind, name, err))
		}
		return nil, nil
	}
	r.remember(kind, cacheKey, *created)
	return created, nil
}

func (r *Resolver) remember(kind RefKind, key string, id uuid.UUID) {
	if r.cache[kind] == nil {
		r.cache[kind] = map[string]uuid.UUID{}
	}
	r.cache[kind][key] = id
}

func (r *Resolver) lookup(ctx context.Context, kind RefKind, name string) (*uuid.UUID, error) {
	switch kind {
	case RefDepartment:
		dept, err := r.repo.FindDepartmentByName(ctx, name)
		if err != nil || dept == nil {
			return nil, err
		}
		return &dept.ID, nil
	case RefCategory:
		cat, err := r.repo.FindCategoryByName(ctx, name)
		if err != nil || cat == nil {
			return nil, err
		}
		return &cat.ID, nil
	case RefLocation:
		loc, err := r.repo.FindLocationByName(ctx, name)
		if err != nil || loc == nil {
			return nil, err
		}
		return &loc.ID, nil
	case RefSupplier:
		sup, err := r.repo.FindSupplierByName(ctx, name)
		if err != nil || sup == nil {
			return nil, err
		}
		return &sup.ID, nil
	default:
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
}

func (r *Resolver) create(ctx context.Context, kind RefKind, name string) (*uuid.UUID, error) {
	code, err := r.uniqueCode(ctx, kind, name)
	if err != nil {
		return nil, err
	}

	switch kind {
	case RefDepartment:
		dept, err := r.repo.CreateDepartment(ctx, &models.Department{Name: name, Code: code})
		if err != nil {
			return nil, err
		}
		return &dept.ID, nil
	case RefCategory:
		note := importedCategoryNote
		cat, err := r.repo.CreateCategory(ctx, &models.Category{Name: name, Code: code, Description: &note})
		if err != nil {
			return nil, err
		}
		return &cat.ID, nil
	case RefLocation:
		loc, err := r.repo.CreateLocation(ctx, &models.StorageLocation{
			Name:         name,
			Code:         code,
			LocationType: enums.LocationTypeGeneral,
		})
		if err != nil {
			return nil, err
		}
		return &loc.ID, nil
	default:
		return nil, fmt.Errorf("kind %q cannot be created", kind)
	}
}

// uniqueCode generates a code and verifies it is unused, retrying a few
// times before giving up.
func (r *Resolver) uniqueCode(ctx context.Context, kind RefKind, name string) (string, error) {
	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		code := GenerateRefCode(name)
		exists, err := r.codeExists(ctx, kind, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique code for %s %q", kind, name)
}

func (r *Resolver) codeExists(ctx context.Context, kind RefKind, code string) (bool, error) {
	switch kind {
	case RefDepartment:
		return r.repo.DepartmentCodeExists(ctx, code)
	case RefCategory:
		return r.repo.CategoryCodeExists(ctx, code)
	case RefLocation:
		return r.repo.LocationCodeExists(ctx, code)
	default:
		return false, fmt.Errorf("kind %q has no codes", kind)
	}
}
