package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/pkg/database"
)

func TestMonthExpr(t *testing.T) {
	cases := map[string]string{
		"sqlite":    "strftime('%Y-%m', orders.order_date)",
		"postgres":  "to_char(orders.order_date, 'YYYY-MM')",
		"mysql":     "DATE_FORMAT(orders.order_date, '%Y-%m')",
		"sqlserver": "FORMAT(orders.order_date, 'yyyy-MM')",
	}
	for dialect, want := range cases {
		assert.Equal(t, want, database.MonthExpr(dialect, "orders.order_date"), dialect)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())

	var month string
	require.NoError(t, db.Raw("SELECT "+database.MonthExpr("sqlite", "?"), "2026-03-14 10:00:00+00:00").Scan(&month).Error)
	assert.Equal(t, "2026-03", month)
}
