package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/filters"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/internal/testutil"
	"github.com/shashiranjanraj/bookstore/pkg/event"
)

func catalogService(db *gorm.DB) *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewProductRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewAuthorRepository(db),
	)
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSearchFictionAndClassicInPriceRange(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Categories(t, db, "fiction", "classic")
	testutil.Product(t, db, "Only Fiction", "15", "fiction")
	testutil.Product(t, db, "Both Cheap", "9.99", "fiction", "classic")
	testutil.Product(t, db, "Both In Range", "10", "fiction", "classic")
	testutil.Product(t, db, "Both Upper Bound", "20", "classic", "fiction")
	testutil.Product(t, db, "Both Too Dear", "20.01", "fiction", "classic")

	page, err := catalogService(db).Search(context.Background(), filters.Request{
		MinPrice:    price("10"),
		MaxPrice:    price("20"),
		CategoryIDs: []string{"fiction", "classic"},
		SortBy:      "price",
		Limit:       1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Both In Range", page.Data[0].Title)
	assert.ElementsMatch(t, []string{"fiction", "classic"}, page.Data[0].Extension.CategoryIDs())
}

func TestSearchNoMatchesIsNotAnError(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Product(t, db, "Dune", "10")

	page, err := catalogService(db).Search(context.Background(), filters.Request{Title: "zzz"})
	require.NoError(t, err)

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"limit":10,"totalPages":0}`, string(raw))
}

func TestSearchPastTheLastPage(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Product(t, db, "Dune", "10")

	page, err := catalogService(db).Search(context.Background(), filters.Request{Page: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Data)
}

func TestSearchRejectsBadRequests(t *testing.T) {
	svc := catalogService(testutil.NewDB(t))

	_, err := svc.Search(context.Background(), filters.Request{SortBy: "isbn"})
	assert.ErrorIs(t, err, filters.ErrUnsupportedSort)

	_, err = svc.Search(context.Background(), filters.Request{MinPrice: price("5"), MaxPrice: price("1")})
	assert.ErrorIs(t, err, filters.ErrInvalidPriceRange)
}

func TestCreateProductRoundsAndLinks(t *testing.T) {
	db := testutil.NewDB(t)
	svc := catalogService(db)
	ctx := context.Background()

	fiction, err := svc.CreateCategory(ctx, "Fiction")
	require.NoError(t, err)
	herbert, err := svc.CreateAuthor(ctx, "Frank Herbert")
	require.NoError(t, err)

	p, err := svc.CreateProduct(ctx, services.ProductInput{
		Title:  "Dune",
		Price:  decimal.RequireFromString("9.999"),
		Rating: 4.66,
		Extension: services.ExtensionInput{
			CategoryIDs: []string{fiction.ID},
			AuthorIDs:   []string{herbert.ID},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "10", p.Price.String())
	assert.InDelta(t, 4.7, p.Rating, 1e-9)
	assert.Equal(t, []string{fiction.ID}, p.Extension.CategoryIDs())
	require.Len(t, p.Extension.Authors, 1)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	_, err = svc.Show(ctx, p.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductWritesFireCatalogChanged(t *testing.T) {
	t.Cleanup(event.Flush)
	db := testutil.NewDB(t)
	svc := catalogService(db)
	ctx := context.Background()

	var fired []uint
	event.Listen(services.EventCatalogChanged, func(_ context.Context, p interface{}) {
		fired = append(fired, p.(uint))
	})

	p, err := svc.CreateProduct(ctx, services.ProductInput{Title: "Emma", Price: decimal.NewFromInt(7)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	assert.Equal(t, []uint{p.ID, p.ID}, fired)

	// A failed delete changes nothing and fires nothing.
	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), repositories.ErrNotFound)
	assert.Len(t, fired, 2)
}
