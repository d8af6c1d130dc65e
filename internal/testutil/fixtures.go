package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
)

// Categories inserts categories whose id equals their name.
func Categories(t testing.TB, db *gorm.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, db.Create(&models.Category{ID: name, Name: name}).Error)
	}
}

// Product inserts a product, its extension and its category memberships.
func Product(t testing.TB, db *gorm.DB, title, price string, categoryIDs ...string) models.Product {
	t.Helper()

	cats := make([]models.Category, len(categoryIDs))
	for i, id := range categoryIDs {
		cats[i] = models.Category{ID: id}
	}

	p := models.Product{
		Title: title,
		Price: decimal.RequireFromString(price),
		Extension: &models.ProductExtension{
			FileFormat: "pdf",
			Categories: cats,
		},
	}
	require.NoError(t, db.Omit("Extension.Categories.*").Create(&p).Error)
	return p
}

// Order inserts an order whose total is the sum of its line prices.
func Order(t testing.TB, db *gorm.DB, status models.OrderStatus, at time.Time, lines ...models.OrderLine) models.Order {
	t.Helper()

	o := models.Order{
		UserID:      1,
		OrderDate:   at.UTC(),
		Status:      status,
		TotalAmount: models.SumLines(lines),
		Lines:       lines,
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

// Line is an OrderLine for productID at price.
func Line(productID uint, price string) models.OrderLine {
	return models.OrderLine{ProductID: productID, Price: decimal.RequireFromString(price)}
}
