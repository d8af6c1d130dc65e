package migrations_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/shashiranjanraj/bookstore/database/migrations"
	"github.com/shashiranjanraj/bookstore/internal/testutil"
	"github.com/shashiranjanraj/bookstore/pkg/migration"
)

func TestMigrateAndRollBackSchema(t *testing.T) {
	db := testutil.OpenDB(t)
	r := migration.New(db).Output(&bytes.Buffer{})

	require.NoError(t, r.Run())
	for _, table := range []string{"users", "categories", "authors", "products", "product_extensions", "extension_categories", "extension_authors", "orders", "order_lines"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	rows, err := r.Status()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.True(t, row.Ran, row.Name)
	}

	require.NoError(t, r.Rollback())
	for _, table := range []string{"users", "categories", "authors", "products", "product_extensions", "extension_categories", "extension_authors", "orders", "order_lines"} {
		assert.False(t, db.Migrator().HasTable(table), table)
	}

	rows, err = r.Status()
	require.NoError(t, err)
	for _, row := range rows {
		assert.False(t, row.Ran, row.Name)
	}

	require.NoError(t, r.Run(), "schema can be rebuilt after a rollback")
	assert.True(t, db.Migrator().HasTable("extension_categories"))
}

func TestCatalogRollbackWithData(t *testing.T) {
	db := testutil.OpenDB(t)
	r := migration.New(db).Output(&bytes.Buffer{})
	require.NoError(t, r.Run())

	testutil.Categories(t, db, "fiction")
	testutil.Product(t, db, "Dune", "9.99", "fiction")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable("categories"))
	assert.False(t, db.Migrator().HasTable("extension_categories"))
}
