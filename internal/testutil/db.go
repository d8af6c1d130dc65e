// Package testutil provides an isolated in-memory SQLite store for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/database"
)

// OpenDB opens an empty private in-memory database closed on cleanup.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewDB is OpenDB with every model migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := OpenDB(t)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}
