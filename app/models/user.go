// Package models holds the gorm models of the bookstore.
package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:50;default:customer" json:"role"`
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Author{},
		&Product{},
		&ProductExtension{},
		&Order{},
		&OrderLine{},
	}
}
