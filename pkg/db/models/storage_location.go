package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbakken/labstock-backend/pkg/enums"
)

// StorageLocation is a physical place where items are kept.
type StorageLocation struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name         string             `gorm:"column:name;not null"`
	Code         string             `gorm:"column:code;uniqueIndex;not null"`
	Description  *string            `gorm:"column:description"`
	LocationType enums.LocationType `gorm:"column:location_type;not null;default:general"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *StorageLocation) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
