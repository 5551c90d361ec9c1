package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbakken/labstock-backend/pkg/db/models"
)

// ItemRepository defines persistence operations for catalog items.
type ItemRepository interface {
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	FindItemByExternalID(ctx context.Context, externalID string) (*models.Item, error)
	FindItemByNameAndManufacturer(ctx context.Context, name string, manufacturer *string) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	ItemCodeExists(ctx context.Context, code string) (bool, error)
	ListItems(ctx context.Context, search string, limit, offset int) ([]models.Item, int64, error)
}

// SupplierItemRepository defines persistence for supplier listings.
type SupplierItemRepository interface {
	FindSupplierItem(ctx context.Context, itemID, supplierID uuid.UUID) (*models.SupplierItem, error)
	CreateSupplierItem(ctx context.Context, si *models.SupplierItem) (*models.SupplierItem, error)
	UpdateSupplierItem(ctx context.Context, si *models.SupplierItem) (*models.SupplierItem, error)
}

// ReferenceRepository defines persistence for the reference entities the
// importer resolves rows against.
type ReferenceRepository interface {
	FindDepartmentByName(ctx context.Context, name string) (*models.Department, error)
	CreateDepartment(ctx context.Context, d *models.Department) (*models.Department, error)
	DepartmentCodeExists(ctx context.Context, code string) (bool, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)

	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	CategoryCodeExists(ctx context.Context, code string) (bool, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	FindLocationByName(ctx context.Context, name string) (*models.StorageLocation, error)
	CreateLocation(ctx context.Context, l *models.StorageLocation) (*models.StorageLocation, error)
	LocationCodeExists(ctx context.Context, code string) (bool, error)
	ListLocations(ctx context.Context) ([]models.StorageLocation, error)

	FindSupplierByName(ctx context.Context, name string) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
}

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindItemByID loads the item with its associations. Returns nil when missing.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Category").
		Preload("Location").
		Preload("SupplierItems").
		Preload("SupplierItems.Supplier").
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindItemByExternalID looks an item up by its upstream identifier.
func (r *Repository) FindItemByExternalID(ctx context.Context, externalID string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).First(&item, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindItemByNameAndManufacturer matches on case-insensitive name plus
// manufacturer. A nil manufacturer only matches rows without one.
func (r *Repository) FindItemByNameAndManufacturer(ctx context.Context, name string, manufacturer *string) (*models.Item, error) {
	query := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if manufacturer != nil {
		query = query.Where("LOWER(manufacturer) = LOWER(?)", *manufacturer)
	} else {
		query = query.Where("manufacturer IS NULL")
	}

	var item models.Item
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) ItemCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Item{}).Where("item_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListItems returns a page of items plus the total count for the filter.
func (r *Repository) ListItems(ctx context.Context, search string, limit, offset int) ([]models.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Item{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	err := query.
		Preload("SupplierItems").
		Preload("SupplierItems.Supplier").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindSupplierItem loads the listing for the (item, supplier) pair.
func (r *Repository) FindSupplierItem(ctx context.Context, itemID, supplierID uuid.UUID) (*models.SupplierItem, error) {
	var si models.SupplierItem
	err := r.db.WithContext(ctx).
		First(&si, "item_id = ? AND supplier_id = ?", itemID, supplierID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &si, nil
}

func (r *Repository) CreateSupplierItem(ctx context.Context, si *models.SupplierItem) (*models.SupplierItem, error) {
	if err := r.db.WithContext(ctx).Create(si).Error; err != nil {
		return nil, err
	}
	return si, nil
}

func (r *Repository) UpdateSupplierItem(ctx context.Context, si *models.SupplierItem) (*models.SupplierItem, error) {
	if err := r.db.WithContext(ctx).Save(si).Error; err != nil {
		return nil, err
	}
	return si, nil
}

func (r *Repository) FindDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	var dept models.Department
	err := r.db.WithContext(ctx).First(&dept, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) CreateDepartment(ctx context.Context, d *models.Department) (*models.Department, error) {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repository) DepartmentCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Department{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *Repository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	err := r.db.WithContext(ctx).First(&cat, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repository) CategoryCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *Repository) FindLocationByName(ctx context.Context, name string) (*models.StorageLocation, error) {
	var loc models.StorageLocation
	err := r.db.WithContext(ctx).First(&loc, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *Repository) CreateLocation(ctx context.Context, l *models.StorageLocation) (*models.StorageLocation, error) {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Repository) LocationCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StorageLocation{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListLocations(ctx context.Context) ([]models.StorageLocation, error) {
	var locs []models.StorageLocation
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *Repository) FindSupplierByName(ctx context.Context, name string) (*models.Supplier, error) {
	var sup models.Supplier
	err := r.db.WithContext(ctx).First(&sup, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sup, nil
}

// CreateSupplier exists for operator seeding; the importer never calls it.
func (r *Repository) CreateSupplier(ctx context.Context, s *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var sups []models.Supplier
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sups).Error; err != nil {
		return nil, err
	}
	return sups, nil
}
