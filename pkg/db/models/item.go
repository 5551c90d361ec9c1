package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is the canonical catalog entry for a laboratory supply.
type Item struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name                 string     `gorm:"column:name;not null"`
	ItemCode             string     `gorm:"column:item_code;uniqueIndex;not null"`
	ExternalID           *string    `gorm:"column:external_id;uniqueIndex"`
	Manufacturer         *string    `gorm:"column:manufacturer"`
	Notes                *string    `gorm:"column:notes"`
	HazardCodes          *string    `gorm:"column:hazard_codes"`
	Certification        *string    `gorm:"column:certification"`
	InternalReference    *string    `gorm:"column:internal_reference"`
	StandingOrderDetails *string    `gorm:"column:standing_order_details"`
	DepartmentID         *uuid.UUID `gorm:"column:department_id;type:uuid"`
	CategoryID           *uuid.UUID `gorm:"column:category_id;type:uuid"`
	LocationID           *uuid.UUID `gorm:"column:location_id;type:uuid"`

	Department *Department      `gorm:"foreignKey:DepartmentID"`
	Category   *Category        `gorm:"foreignKey:CategoryID"`
	Location   *StorageLocation `gorm:"foreignKey:LocationID"`

	SupplierItems []SupplierItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *Item) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
