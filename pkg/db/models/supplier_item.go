package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbakken/labstock-backend/pkg/enums"
)

// SupplierItem links an item to a supplier with the negotiated terms.
type SupplierItem struct {
	ID                 uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ItemID             uuid.UUID          `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_supplier_items_item_supplier"`
	SupplierID         uuid.UUID          `gorm:"column:supplier_id;type:uuid;not null;uniqueIndex:idx_supplier_items_item_supplier"`
	PartNumber         *string            `gorm:"column:part_number"`
	NegotiatedPrice    *decimal.Decimal   `gorm:"column:negotiated_price;type:numeric(12,2)"`
	DiscountPercent    *float64           `gorm:"column:discount_percent;type:numeric(5,2)"`
	AgreementReference *string            `gorm:"column:agreement_reference"`
	PackageDescription *string            `gorm:"column:package_description"`
	QuantityPerPackage *float64           `gorm:"column:quantity_per_package"`
	ProductURL         *string            `gorm:"column:product_url"`
	LastVerifiedAt     *time.Time         `gorm:"column:last_verified_at"`
	LastVerifiedBy     *string            `gorm:"column:last_verified_by"`
	Role               enums.SupplierRole `gorm:"column:role;not null;default:primary"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *SupplierItem) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
