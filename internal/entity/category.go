package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the single persisted resource. Slug is the human-readable
// identifier: unique, and restricted to latin letters, digits, hyphen and
// underscore both here and by a CHECK constraint on the table.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null;check:chk_categories_slug,slug ~ '^[a-zA-Z0-9_-]+$'" json:"slug"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"type:varchar(255)" json:"description"`
	CreatedDate time.Time `gorm:"column:created_date;type:timestamptz;not null;autoCreateTime" json:"createdDate"`
	Active      bool      `gorm:"not null" json:"active"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
