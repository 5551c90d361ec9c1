package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department is an organizational unit items belong to.
type Department struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	Description *string   `gorm:"column:description"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *Department) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
