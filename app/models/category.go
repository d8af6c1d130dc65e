package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

// BeforeCreate assigns a UUID unless the caller chose an id (seed slugs such as "fiction").
func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Author struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

func (a *Author) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
