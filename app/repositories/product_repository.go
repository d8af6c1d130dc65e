package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/filters"
	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/collection"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
	"github.com/shashiranjanraj/bookstore/pkg/orm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) filtered(ctx context.Context, c filters.Compiled) *orm.Query {
	return orm.On(r.db).WithContext(ctx).Model(&models.Product{}).Scopes(c.Clauses...)
}

// Count returns the number of distinct products matching c.
func (r *ProductRepository) Count(ctx context.Context, c filters.Compiled) (int64, error) {
	defer metrics.ObserveDBQuery("catalog_count", time.Now())

	total, err := r.filtered(ctx, c).Count("products.id")
	return total, wrap("count products", err)
}

// Find loads the page described by c with extension, categories and authors.
func (r *ProductRepository) Find(ctx context.Context, c filters.Compiled) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("catalog_fetch", time.Now())

	products := []models.Product{}
	err := r.filtered(ctx, c).
		Preload("Extension.Categories").
		Preload("Extension.Authors").
		Page(&products, c.Page, c.Limit, c.Order...)
	return products, wrap("find products", err)
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := orm.On(r.db.WithContext(ctx)).
		Preload("Extension.Categories").
		Preload("Extension.Authors").
		Where("products.id = ?", id).
		First(&p)
	return p, wrap("find product", err)
}

// Create inserts p, its extension and its memberships in one transaction.
// Every category and author id must already exist.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product, categoryIDs, authorIDs []string) error {
	categoryIDs = collection.Unique(categoryIDs)
	authorIDs = collection.Unique(authorIDs)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cats []models.Category
		if len(categoryIDs) > 0 {
			if err := orm.On(tx).Where("id IN ?", categoryIDs).Get(&cats); err != nil {
				return err
			}
			if len(cats) != len(categoryIDs) {
				return ErrMissingRelation
			}
		}

		var authors []models.Author
		if len(authorIDs) > 0 {
			if err := orm.On(tx).Where("id IN ?", authorIDs).Get(&authors); err != nil {
				return err
			}
			if len(authors) != len(authorIDs) {
				return ErrMissingRelation
			}
		}

		if p.Extension == nil {
			p.Extension = &models.ProductExtension{}
		}
		p.Extension.Categories = cats
		p.Extension.Authors = authors

		return tx.Omit("Extension.Categories.*", "Extension.Authors.*").Create(p).Error
	})
	return wrap("create product", err)
}

// Delete removes a product, its extension and its memberships. Shared
// categories and authors stay.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var extIDs []uint
		if err := tx.Model(&models.ProductExtension{}).Where("product_id = ?", id).Pluck("id", &extIDs).Error; err != nil {
			return err
		}

		if len(extIDs) > 0 {
			for _, join := range []string{"extension_categories", "extension_authors"} {
				if err := tx.Exec("DELETE FROM "+join+" WHERE product_extension_id IN ?", extIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", extIDs).Delete(&models.ProductExtension{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrap("delete product", err)
}
