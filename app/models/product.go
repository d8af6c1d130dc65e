package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Its categories and authors are reached through
// the one-to-one Extension record.
type Product struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Price       decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0;index" json:"price"`
	Rating      float64           `gorm:"type:decimal(2,1);not null;default:0" json:"rating"`
	RatingCount int               `gorm:"not null;default:0" json:"ratingCount"`
	Extension   *ProductExtension `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"extension,omitempty"`
	CreatedAt   time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ProductExtension holds the extended attributes and relations of a Product.
type ProductExtension struct {
	ID         uint       `gorm:"primaryKey" json:"-"`
	ProductID  uint       `gorm:"not null;uniqueIndex" json:"-"`
	FileFormat string     `gorm:"size:50" json:"fileFormat"`
	SourceURL  string     `gorm:"size:2048" json:"sourceUrl"`
	CoverURL   string     `gorm:"size:2048" json:"coverUrl"`
	Publisher  string     `gorm:"size:255" json:"publisher"`
	PageCount  int        `gorm:"not null;default:0" json:"pageCount"`
	ISBN       string     `gorm:"size:20;index" json:"isbn"`
	Categories []Category `gorm:"many2many:extension_categories;constraint:OnDelete:CASCADE" json:"categories"`
	Authors    []Author   `gorm:"many2many:extension_authors;constraint:OnDelete:CASCADE" json:"authors"`
}

// CategoryIDs lists the ids of the loaded categories.
func (e *ProductExtension) CategoryIDs() []string {
	if e == nil {
		return nil
	}
	ids := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		ids[i] = c.ID
	}
	return ids
}
