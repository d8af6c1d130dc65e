// Package services holds the business operations behind the HTTP and
// GraphQL surfaces: catalog queries, checkout, order lifecycle and sales
// analytics.
package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/bookstore/app/filters"
	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
	"github.com/shashiranjanraj/bookstore/pkg/orm"
)

// ProductPage is one page of catalog results:
// {"data": [...], "total", "page", "limit", "totalPages"}.
type ProductPage struct {
	Data []models.Product `json:"data"`
	orm.Pagination
}

// ExtensionInput carries the extended attributes of a new product.
type ExtensionInput struct {
	FileFormat  string   `json:"fileFormat" validate:"omitempty,max=50"`
	SourceURL   string   `json:"sourceUrl" validate:"omitempty,url,max=2048"`
	CoverURL    string   `json:"coverUrl" validate:"omitempty,url,max=2048"`
	Publisher   string   `json:"publisher" validate:"omitempty,max=255"`
	PageCount   int      `json:"pageCount" validate:"gte=0"`
	ISBN        string   `json:"isbn" validate:"omitempty,max=20"`
	CategoryIDs []string `json:"categoryIds" validate:"omitempty,dive,required,max=36"`
	AuthorIDs   []string `json:"authorIds" validate:"omitempty,dive,required,max=36"`
}

// ProductInput is the admin payload for creating a product.
type ProductInput struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description" validate:"max=10000"`
	Price       decimal.Decimal `json:"price" validate:"dgte=0"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=5"`
	RatingCount int             `json:"ratingCount" validate:"gte=0"`
	Extension   ExtensionInput  `json:"extension"`
}

// CatalogService is the Catalog Query Service plus the admin catalog writes.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	authors    *repositories.AuthorRepository
}

func NewCatalogService(
	products *repositories.ProductRepository,
	categories *repositories.CategoryRepository,
	authors *repositories.AuthorRepository,
) *CatalogService {
	return &CatalogService{products: products, categories: categories, authors: authors}
}

// Search compiles req and returns the matching page. The total comes from
// the same compiled clauses as the page, so it always counts distinct
// matching products.
func (s *CatalogService) Search(ctx context.Context, req filters.Request) (ProductPage, error) {
	compiled, err := filters.Compile(req)
	if err != nil {
		return ProductPage{}, err
	}

	total, err := s.products.Count(ctx, compiled)
	if err != nil {
		return ProductPage{}, err
	}
	metrics.CatalogMatches.Observe(float64(total))

	page := ProductPage{
		Data:       []models.Product{},
		Pagination: orm.NewPagination(total, compiled.Page, compiled.Limit),
	}
	if total > 0 && int64(compiled.Offset()) < total {
		if page.Data, err = s.products.Find(ctx, compiled); err != nil {
			return ProductPage{}, err
		}
	}

	logger.WithCtx(ctx).Debug("catalog search",
		"clauses", len(compiled.Clauses),
		"order", compiled.Order,
		"total", total,
		"page", page.Page,
	)
	return page, nil
}

func (s *CatalogService) Show(ctx context.Context, id uint) (models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// CreateProduct stores a product with its extension and relations.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	p := models.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Rating:      decimal.NewFromFloat(in.Rating).Round(1).InexactFloat64(),
		RatingCount: in.RatingCount,
		Extension: &models.ProductExtension{
			FileFormat: in.Extension.FileFormat,
			SourceURL:  in.Extension.SourceURL,
			CoverURL:   in.Extension.CoverURL,
			Publisher:  in.Extension.Publisher,
			PageCount:  in.Extension.PageCount,
			ISBN:       in.Extension.ISBN,
		},
	}

	if err := s.products.Create(ctx, &p, in.Extension.CategoryIDs, in.Extension.AuthorIDs); err != nil {
		return models.Product{}, err
	}

	created, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("services: reload product %d: %w", p.ID, err)
	}
	logger.WithCtx(ctx).Info("product created", "product_id", created.ID)
	event.Fire(ctx, EventCatalogChanged, created.ID)
	return created, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("product deleted", "product_id", id)
	event.Fire(ctx, EventCatalogChanged, id)
	return nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.All(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	c := models.Category{Name: name}
	return c, s.categories.Create(ctx, &c)
}

func (s *CatalogService) Authors(ctx context.Context) ([]models.Author, error) {
	return s.authors.All(ctx)
}

func (s *CatalogService) CreateAuthor(ctx context.Context, name string) (models.Author, error) {
	a := models.Author{Name: name}
	return a, s.authors.Create(ctx, &a)
}
