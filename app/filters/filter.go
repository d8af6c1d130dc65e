// Package filters compiles a catalog filter request into gorm clauses.
//
// Every optional field contributes one clause; an empty request compiles to
// no clauses and the default ordering. The same clauses drive both the page
// fetch and the total count, so the two can never disagree.
package filters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/pkg/collection"
	"github.com/shashiranjanraj/bookstore/pkg/orm"
)

var (
	ErrUnsupportedSort   = errors.New("filters: unsupported sort field")
	ErrInvalidPriceRange = errors.New("filters: minPrice is greater than maxPrice")
)

const (
	Asc  = "ASC"
	Desc = "DESC"
)

// likeEscape is accepted by every supported dialect, unlike backslash.
const likeEscape = "!"

// sortColumns whitelists sortBy values. Keys are lower-cased.
var sortColumns = map[string]string{
	"title":        "products.title",
	"price":        "products.price",
	"rating":       "products.rating",
	"ratingcount":  "products.rating_count",
	"rating_count": "products.rating_count",
	"createdat":    "products.created_at",
	"created_at":   "products.created_at",
	"updatedat":    "products.updated_at",
	"updated_at":   "products.updated_at",
}

// Request is the catalog filter as received from REST or GraphQL.
type Request struct {
	Title       string           `json:"title" validate:"omitempty,max=255"`
	CategoryIDs []string         `json:"categoryIds" validate:"omitempty,max=50,dive,max=36"`
	MinPrice    *decimal.Decimal `json:"minPrice"`
	MaxPrice    *decimal.Decimal `json:"maxPrice"`
	SortBy      string           `json:"sortBy" validate:"omitempty,max=32"`
	SortOrder   string           `json:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
	Page        int              `json:"page"`
	Limit       int              `json:"limit"`
}

// Clause narrows a query over products.
type Clause = func(*gorm.DB) *gorm.DB

// Compiled is a ready-to-run filter.
type Compiled struct {
	Clauses []Clause
	Order   []string
	Page    int
	Limit   int
}

// Apply folds every clause into db. db must be scoped to the products table.
func (c Compiled) Apply(db *gorm.DB) *gorm.DB {
	return orm.On(db).Scopes(c.Clauses...).Builder()
}

func (c Compiled) Offset() int {
	return orm.Offset(c.Page, c.Limit)
}

// Compile validates req and builds its clauses, ordering and paging.
func Compile(req Request) (Compiled, error) {
	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return Compiled{}, ErrInvalidPriceRange
	}

	order, err := Order(req.SortBy, req.SortOrder)
	if err != nil {
		return Compiled{}, err
	}

	page, limit := orm.Normalize(req.Page, req.Limit)
	out := Compiled{Order: order, Page: page, Limit: limit}

	for _, build := range []func(Request) Clause{titleClause, minPriceClause, maxPriceClause, categoryClause} {
		if clause := build(req); clause != nil {
			out.Clauses = append(out.Clauses, clause)
		}
	}
	return out, nil
}

// Order resolves sortBy/sortOrder to ORDER BY terms. An empty sortBy sorts
// newest first unless ASC is asked for explicitly. Ties break on id in the
// same direction so paging is stable.
func Order(sortBy, sortOrder string) ([]string, error) {
	dir := Asc
	if strings.EqualFold(strings.TrimSpace(sortOrder), Desc) {
		dir = Desc
	}

	key := strings.ToLower(strings.TrimSpace(sortBy))
	if key == "" {
		key = "created_at"
		if !strings.EqualFold(strings.TrimSpace(sortOrder), Asc) {
			dir = Desc
		}
	}

	column, ok := sortColumns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSort, sortBy)
	}
	return []string{column + " " + dir, "products.id " + dir}, nil
}

func titleClause(req Request) Clause {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil
	}
	pattern := "%" + escapeLike(strings.ToLower(title)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(products.title) LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	}
}

func minPriceClause(req Request) Clause {
	if req.MinPrice == nil {
		return nil
	}
	min := *req.MinPrice
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("products.price >= ?", min)
	}
}

func maxPriceClause(req Request) Clause {
	if req.MaxPrice == nil {
		return nil
	}
	max := *req.MaxPrice
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("products.price <= ?", max)
	}
}

// categoryClause keeps products whose categories include every requested id:
// membership rows are narrowed to the set, grouped per product, and only
// groups that matched all distinct ids survive.
func categoryClause(req Request) Clause {
	ids := collection.Unique(collection.Filter(
		collection.Map(req.CategoryIDs, strings.TrimSpace),
		func(id string) bool { return id != "" },
	))
	if len(ids) == 0 {
		return nil
	}

	return func(db *gorm.DB) *gorm.DB {
		members := db.Session(&gorm.Session{NewDB: true}).
			Table("product_extensions").
			Select("product_extensions.product_id").
			Joins("JOIN extension_categories ON extension_categories.product_extension_id = product_extensions.id").
			Where("extension_categories.category_id IN ?", ids).
			Group("product_extensions.product_id").
			Having("COUNT(DISTINCT extension_categories.category_id) = ?", len(ids))

		return db.Where("products.id IN (?)", members)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}
