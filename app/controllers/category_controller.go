package controllers

import (
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
)

type nameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CategoryController serves both categories and authors; they share the
// same shape and the same catalog service.
type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

func (cc *CategoryController) Categories(c *ctx.Context) {
	list, err := cc.catalog.Categories(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(list)
}

func (cc *CategoryController) StoreCategory(c *ctx.Context) {
	var body nameRequest
	if !c.BindJSON(&body) {
		return
	}

	category, err := cc.catalog.CreateCategory(c.Context(), body.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(category)
}

func (cc *CategoryController) Authors(c *ctx.Context) {
	list, err := cc.catalog.Authors(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(list)
}

func (cc *CategoryController) StoreAuthor(c *ctx.Context) {
	var body nameRequest
	if !c.BindJSON(&body) {
		return
	}

	author, err := cc.catalog.CreateAuthor(c.Context(), body.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(author)
}
