package filters_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/filters"
	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/internal/testutil"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func catalog(t *testing.T) *gorm.DB {
	db := testutil.NewDB(t)
	testutil.Categories(t, db, "fiction", "classic", "poetry")

	testutil.Product(t, db, "Pride and Prejudice", "12.00", "fiction", "classic")
	testutil.Product(t, db, "Dune", "15.00", "fiction")
	testutil.Product(t, db, "The Odyssey", "20.00", "classic", "poetry", "fiction")
	testutil.Product(t, db, "Leaves of Grass", "9.99", "poetry", "classic")
	testutil.Product(t, db, "100%_Pure", "25.00")
	return db
}

func titles(t *testing.T, db *gorm.DB, req filters.Request) []string {
	t.Helper()

	c, err := filters.Compile(req)
	require.NoError(t, err)

	var products []models.Product
	q := c.Apply(db.Model(&models.Product{}))
	for _, o := range c.Order {
		q = q.Order(o)
	}
	require.NoError(t, q.Find(&products).Error)

	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func TestCategoryIntersectionWithPriceRange(t *testing.T) {
	db := catalog(t)

	got := titles(t, db, filters.Request{
		MinPrice:    dec("10"),
		MaxPrice:    dec("20"),
		CategoryIDs: []string{"fiction", "classic"},
		SortBy:      "price",
	})

	assert.Equal(t, []string{"Pride and Prejudice", "The Odyssey"}, got)
}

func TestCategoryIntersectionIgnoresDuplicateIDs(t *testing.T) {
	db := catalog(t)

	got := titles(t, db, filters.Request{CategoryIDs: []string{"poetry", "poetry", " classic "}, SortBy: "title"})

	assert.Equal(t, []string{"Leaves of Grass", "The Odyssey"}, got)
}

func TestUnknownCategoryMatchesNothing(t *testing.T) {
	db := catalog(t)

	assert.Empty(t, titles(t, db, filters.Request{CategoryIDs: []string{"fiction", "horror"}}))
}

func TestTitleIsCaseInsensitiveSubstring(t *testing.T) {
	db := catalog(t)

	assert.Equal(t, []string{"Pride and Prejudice"}, titles(t, db, filters.Request{Title: "PREJ"}))
	assert.Equal(t, []string{"Leaves of Grass", "The Odyssey"}, titles(t, db, filters.Request{Title: "S", SortBy: "title"}))
}

func TestTitleWildcardsAreLiteral(t *testing.T) {
	db := catalog(t)

	assert.Equal(t, []string{"100%_Pure"}, titles(t, db, filters.Request{Title: "%_"}))
	assert.Empty(t, titles(t, db, filters.Request{Title: "0%P"}))
}

func TestPriceBoundsAreInclusive(t *testing.T) {
	db := catalog(t)

	got := titles(t, db, filters.Request{MinPrice: dec("12"), MaxPrice: dec("15"), SortBy: "price", SortOrder: "desc"})
	assert.Equal(t, []string{"Dune", "Pride and Prejudice"}, got)

	got = titles(t, db, filters.Request{MaxPrice: dec("9.99")})
	assert.Equal(t, []string{"Leaves of Grass"}, got)
}

func TestCompileRejectsInvertedPriceRange(t *testing.T) {
	_, err := filters.Compile(filters.Request{MinPrice: dec("20"), MaxPrice: dec("10")})
	assert.ErrorIs(t, err, filters.ErrInvalidPriceRange)

	_, err = filters.Compile(filters.Request{MinPrice: dec("10"), MaxPrice: dec("10")})
	assert.NoError(t, err)
}

func TestOrder(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder string
		want              []string
	}{
		{"", "", []string{"products.created_at DESC", "products.id DESC"}},
		{"", "asc", []string{"products.created_at ASC", "products.id ASC"}},
		{"price", "", []string{"products.price ASC", "products.id ASC"}},
		{"price", "DESC", []string{"products.price DESC", "products.id DESC"}},
		{"ratingCount", "desc", []string{"products.rating_count DESC", "products.id DESC"}},
		{"createdAt", "ASC", []string{"products.created_at ASC", "products.id ASC"}},
	}
	for _, tc := range cases {
		got, err := filters.Order(tc.sortBy, tc.sortOrder)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s/%s", tc.sortBy, tc.sortOrder)
	}

	_, err := filters.Order("price; DROP TABLE products", "")
	assert.ErrorIs(t, err, filters.ErrUnsupportedSort)
}

func TestCompileDefaultsPaging(t *testing.T) {
	c, err := filters.Compile(filters.Request{})
	require.NoError(t, err)

	assert.Empty(t, c.Clauses)
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, 10, c.Limit)
	assert.Equal(t, 0, c.Offset())

	c, err = filters.Compile(filters.Request{Page: 3, Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, 50, c.Offset())
}
