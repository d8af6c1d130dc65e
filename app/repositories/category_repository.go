package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/orm"
)

const (
	categoriesCacheKey = "catalog:categories"
	authorsCacheKey    = "catalog:authors"
	lookupCacheTTL     = 10 * time.Minute
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All lists categories by name, served from cache when available.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	err := orm.On(r.db.WithContext(ctx).Model(&models.Category{}).Order("name")).
		Cache(categoriesCacheKey, lookupCacheTTL, &cats)
	return cats, wrap("list categories", err)
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return wrap("create category", err)
	}
	forget(ctx, categoriesCacheKey)
	return nil
}

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) All(ctx context.Context) ([]models.Author, error) {
	authors := []models.Author{}
	err := orm.On(r.db.WithContext(ctx).Model(&models.Author{}).Order("name")).
		Cache(authorsCacheKey, lookupCacheTTL, &authors)
	return authors, wrap("list authors", err)
}

func (r *AuthorRepository) Create(ctx context.Context, a *models.Author) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return wrap("create author", err)
	}
	forget(ctx, authorsCacheKey)
	return nil
}

func forget(ctx context.Context, keys ...string) {
	if err := orm.Forget(ctx, keys...); err != nil {
		logger.WithCtx(ctx).Warn("cache: forget failed", "keys", keys, "error", err)
	}
}
