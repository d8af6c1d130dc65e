package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260101000002_create_order_tables", &CreateOrderTables{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

// CreateCatalogTables creates products, their extensions, categories,
// authors and the two join tables.
type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Author{}, &models.Product{}, &models.ProductExtension{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return dropInOrder(db,
		"extension_categories",
		"extension_authors",
		&models.ProductExtension{},
		&models.Product{},
		&models.Author{},
		&models.Category{},
	)
}

type CreateOrderTables struct{}

func (m *CreateOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderLine{})
}

func (m *CreateOrderTables) Down(db *gorm.DB) error {
	return dropInOrder(db, &models.OrderLine{}, &models.Order{})
}

// dropInOrder drops one table per call. Migrator().DropTable re-sorts its
// arguments by model dependency and cannot see the join tables, which
// SQLite then rejects once the parent is gone.
func dropInOrder(db *gorm.DB, tables ...interface{}) error {
	for _, t := range tables {
		if err := db.Migrator().DropTable(t); err != nil {
			return err
		}
	}
	return nil
}
