// Package routes declares the REST surface.
package routes

import (
	"github.com/shashiranjanraj/bookstore/app/controllers"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/middleware"
	"github.com/shashiranjanraj/bookstore/pkg/rbac"
	"github.com/shashiranjanraj/bookstore/pkg/router"
)

type Controllers struct {
	Auth       *controllers.AuthController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Orders     *controllers.OrderController
	Analytics  *controllers.AnalyticsController
}

func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	api.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))

	api.Get("/products", "products.index", ctx.Wrap(c.Products.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(c.Products.Show))
	api.Get("/categories", "categories.index", ctx.Wrap(c.Categories.Categories))
	api.Get("/authors", "authors.index", ctx.Wrap(c.Categories.Authors))

	customer := api.Group("", middleware.Auth)
	customer.Post("/checkout", "orders.checkout", ctx.Wrap(c.Orders.Checkout))

	admin := api.Group("/admin", middleware.Auth, rbac.HasRole(auth.RoleAdmin))
	admin.Post("/products", "admin.products.store", ctx.Wrap(c.Products.Store))
	admin.Delete("/products/{id}", "admin.products.destroy", ctx.Wrap(c.Products.Destroy))
	admin.Post("/categories", "admin.categories.store", ctx.Wrap(c.Categories.StoreCategory))
	admin.Post("/authors", "admin.authors.store", ctx.Wrap(c.Categories.StoreAuthor))
	admin.Patch("/orders/{id}/status", "admin.orders.status", ctx.Wrap(c.Orders.UpdateStatus))

	analytics := admin.Group("/analytics")
	analytics.Get("/revenue", "admin.analytics.revenue", ctx.Wrap(c.Analytics.Revenue))
	analytics.Get("/sales", "admin.analytics.sales", ctx.Wrap(c.Analytics.Sales))
	analytics.Get("/categories", "admin.analytics.categories", ctx.Wrap(c.Analytics.Categories))
	analytics.Get("/dashboard", "admin.analytics.dashboard", ctx.Wrap(c.Analytics.Dashboard))
}
