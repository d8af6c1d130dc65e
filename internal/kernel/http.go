// Package kernel assembles the HTTP handler: services, controllers, the
// global middleware stack and every route.
package kernel

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/controllers"
	appgql "github.com/shashiranjanraj/bookstore/app/graphql"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/app/routes"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/graphql"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
	"github.com/shashiranjanraj/bookstore/pkg/middleware"
	"github.com/shashiranjanraj/bookstore/pkg/orm"
	"github.com/shashiranjanraj/bookstore/pkg/reqid"
	"github.com/shashiranjanraj/bookstore/pkg/router"
)

type HTTPKernel struct {
	router    *router.Router
	analytics *services.AnalyticsService

	stop     chan struct{}
	stopOnce sync.Once
}

// NewHTTPKernel wires the application over db. db may be nil when only the
// route table is needed (route:list).
func NewHTTPKernel(db *gorm.DB) (*HTTPKernel, error) {
	orm.CacheStore = cache.Store{}

	products := repositories.NewProductRepository(db)
	categories := repositories.NewCategoryRepository(db)
	authors := repositories.NewAuthorRepository(db)
	orders := repositories.NewOrderRepository(db)
	users := repositories.NewUserRepository(db)

	catalog := services.NewCatalogService(products, categories, authors)
	analytics := services.NewAnalyticsService(orders, services.AnalyticsOptions{
		WindowMonths:  config.AnalyticsWindowMonths(),
		TopCategories: config.AnalyticsTopCategories(),
		CacheTTL:      config.AnalyticsCacheTTL(),
	})

	schema, err := appgql.NewSchema(catalog)
	if err != nil {
		return nil, fmt.Errorf("kernel: graphql schema: %w", err)
	}

	proxies, err := middleware.ParseTrustedProxies(config.TrustedProxies())
	if err != nil {
		return nil, fmt.Errorf("kernel: %w", err)
	}

	k := &HTTPKernel{
		router:    router.New(),
		analytics: analytics,
		stop:      make(chan struct{}),
	}

	// Outermost first. Recovery runs inside Logger so a panic is logged as a 500.
	k.router.Use(metrics.Middleware())
	k.router.Use(reqid.Middleware())
	k.router.Use(middleware.Logger)
	k.router.Use(middleware.Recovery)
	cors := middleware.DefaultCORSOptions()
	cors.AllowedOrigins = config.CORSOrigins()
	k.router.Use(middleware.CORS(cors))
	k.router.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute, proxies, k.stop))

	k.router.HandleFunc("/metrics", metrics.Handler())
	k.router.HandleFunc("/graphql", graphql.Handler(schema))

	routes.RegisterAPI(k.router, routes.Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(users)),
		Products:   controllers.NewProductController(catalog),
		Categories: controllers.NewCategoryController(catalog),
		Orders:     controllers.NewOrderController(services.NewOrderService(orders)),
		Analytics:  controllers.NewAnalyticsController(analytics),
	})
	return k, nil
}

// Boot registers the event listeners the running server needs.
func (k *HTTPKernel) Boot() {
	k.analytics.InvalidateOnWrites()
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}

// Close stops the rate limiter's sweeper.
func (k *HTTPKernel) Close() {
	k.stopOnce.Do(func() { close(k.stop) })
}
