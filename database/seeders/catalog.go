package seeders

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("catalog", SeedCatalog)
	Register("orders", SeedOrders)
}

var demoCategories = []models.Category{
	{ID: "fiction", Name: "Fiction"},
	{ID: "classic", Name: "Classic"},
	{ID: "science", Name: "Science"},
	{ID: "history", Name: "History"},
	{ID: "poetry", Name: "Poetry"},
	{ID: "children", Name: "Children"},
}

var demoAuthors = []models.Author{
	{ID: "austen", Name: "Jane Austen"},
	{ID: "herbert", Name: "Frank Herbert"},
	{ID: "sagan", Name: "Carl Sagan"},
	{ID: "beard", Name: "Mary Beard"},
	{ID: "dickinson", Name: "Emily Dickinson"},
}

type demoProduct struct {
	title      string
	price      string
	rating     float64
	categories []string
	authors    []string
}

var demoProducts = []demoProduct{
	{"Pride and Prejudice", "9.99", 4.6, []string{"fiction", "classic"}, []string{"austen"}},
	{"Emma", "12.50", 4.2, []string{"fiction", "classic"}, []string{"austen"}},
	{"Dune", "18.00", 4.7, []string{"fiction", "science"}, []string{"herbert"}},
	{"Cosmos", "15.25", 4.8, []string{"science"}, []string{"sagan"}},
	{"SPQR", "21.00", 4.4, []string{"history"}, []string{"beard"}},
	{"Collected Poems", "7.75", 4.1, []string{"poetry", "classic"}, []string{"dickinson"}},
	{"The Little Stargazer", "5.50", 3.9, []string{"children", "science"}, nil},
}

// SeedUsers creates an admin and a customer. The admin password comes from
// SEED_ADMIN_PASSWORD.
func SeedUsers(db *gorm.DB) error {
	users := []struct {
		name, email, password, role string
	}{
		{"Administrator", "admin@bookstore.test", config.Get("SEED_ADMIN_PASSWORD", "admin-password"), auth.RoleAdmin},
		{"Demo Customer", "customer@bookstore.test", "customer-password", auth.RoleCustomer},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		row := models.User{Name: u.name, Email: u.email, Password: hash, Role: u.role}
		if err := db.Where(models.User{Email: u.email}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCatalog creates the demo categories, authors and products. Products
// that already exist by title are left alone.
func SeedCatalog(db *gorm.DB) error {
	for i := range demoCategories {
		if err := db.FirstOrCreate(&demoCategories[i], models.Category{ID: demoCategories[i].ID}).Error; err != nil {
			return err
		}
	}
	for i := range demoAuthors {
		if err := db.FirstOrCreate(&demoAuthors[i], models.Author{ID: demoAuthors[i].ID}).Error; err != nil {
			return err
		}
	}

	for _, d := range demoProducts {
		var existing models.Product
		err := db.Where("title = ?", d.title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		p := models.Product{
			Title:       d.title,
			Price:       decimal.RequireFromString(d.price),
			Rating:      d.rating,
			RatingCount: 10,
			Extension: &models.ProductExtension{
				FileFormat: "epub",
				Categories: refs(d.categories, func(id string) models.Category { return models.Category{ID: id} }),
				Authors:    refs(d.authors, func(id string) models.Author { return models.Author{ID: id} }),
			},
		}
		if err := db.Omit("Extension.Categories.*", "Extension.Authors.*").Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedOrders spreads demo orders over the trailing six months so the
// analytics endpoints have something to chart. It does nothing once any
// order exists.
func SeedOrders(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil || count > 0 {
		return err
	}

	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}

	statuses := []models.OrderStatus{
		models.StatusCompleted, models.StatusCompleted, models.StatusShipping,
		models.StatusCompleted, models.StatusCancelled, models.StatusPending,
	}
	now := time.Now().UTC()

	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 24; i++ {
			first := products[i%len(products)]
			second := products[(i*3+1)%len(products)]

			lines := []models.OrderLine{{ProductID: first.ID, Price: first.Price}}
			if second.ID != first.ID {
				lines = append(lines, models.OrderLine{ProductID: second.ID, Price: second.Price})
			}

			o := models.Order{
				UserID:      2,
				OrderDate:   now.AddDate(0, -(i % 6), -(i % 20)),
				Status:      statuses[i%len(statuses)],
				TotalAmount: models.SumLines(lines),
				Lines:       lines,
			}
			if err := tx.Create(&o).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func refs[T any](ids []string, build func(string) T) []T {
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = build(id)
	}
	return out
}
