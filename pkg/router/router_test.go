package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	admin := r.Group("/api", tag("api")).Group("admin", tag("admin"))
	admin.Get("/analytics/sales", "analytics.sales", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/analytics/sales", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"api", "admin", "route"}, order)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/products/{id}", "products.show", ok)
	api.Delete("/admin/products/{id}", "admin.products.destroy", ok)
	api.Patch("/admin/orders/{id}/status", "admin.orders.status", ok)

	url, err := r.URL("products.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/7", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/api/admin/orders/{id}/status", routes[0].Path)
	assert.Equal(t, http.MethodPatch, routes[0].Method)
	assert.Equal(t, "products.show", routes[2].Name)
}
