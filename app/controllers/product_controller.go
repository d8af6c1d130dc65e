package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/bookstore/app/filters"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/validate"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index is the filtered, paginated catalog listing. The body is the flat
// {data, total, page, limit, totalPages} page, not the usual envelope.
func (pc *ProductController) Index(c *ctx.Context) {
	req, errs := searchRequest(c)
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return
	}

	page, err := pc.catalog.Search(c.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	product, err := pc.catalog.Show(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

func (pc *ProductController) Store(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := pc.catalog.CreateProduct(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(product)
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	if err := pc.catalog.DeleteProduct(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

// searchRequest reads the catalog filter from the query string.
// categoryIds may be repeated or comma-separated.
func searchRequest(c *ctx.Context) (filters.Request, map[string]string) {
	req := filters.Request{
		Title:       c.Query("title"),
		CategoryIDs: c.QueryAll("categoryIds"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
		Page:        c.QueryInt("page", 0),
		Limit:       c.QueryInt("limit", 0),
	}

	errs := validate.Struct(req)
	if errs == nil {
		errs = map[string]string{}
	}
	req.MinPrice = queryDecimal(c, "minPrice", errs)
	req.MaxPrice = queryDecimal(c, "maxPrice", errs)
	return req, errs
}

func queryDecimal(c *ctx.Context, key string, errs map[string]string) *decimal.Decimal {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		errs[key] = "The " + key + " must be a number."
		return nil
	}
	return &d
}
