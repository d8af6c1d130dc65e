package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

const analyticsCachePattern = "analytics:*"

// Ledger is the read side of the Order Ledger used by analytics.
type Ledger interface {
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
	MonthlyTotals(ctx context.Context, from, to time.Time) ([]repositories.MonthTotal, error)
	CategoryTotals(ctx context.Context) ([]repositories.CategoryTotal, error)
}

type AnalyticsOptions struct {
	WindowMonths  int
	TopCategories int
	CacheTTL      time.Duration
	Now           func() time.Time
	// Forget drops cached keys matching a pattern. Defaults to cache.ForgetMatching.
	Forget func(ctx context.Context, pattern string) error
}

// Dashboard bundles the three analytics passes.
type Dashboard struct {
	TotalRevenue Number          `json:"totalRevenue"`
	Sales        []SalesPoint    `json:"sales"`
	Categories   []CategoryShare `json:"categories"`
}

// AnalyticsService is the Sales Aggregator.
type AnalyticsService struct {
	ledger Ledger
	opts   AnalyticsOptions
}

func NewAnalyticsService(ledger Ledger, opts AnalyticsOptions) *AnalyticsService {
	if opts.WindowMonths < 1 {
		opts.WindowMonths = 6
	}
	if opts.TopCategories < 1 {
		opts.TopCategories = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Forget == nil {
		opts.Forget = cache.ForgetMatching
	}
	return &AnalyticsService{ledger: ledger, opts: opts}
}

// InvalidateOnWrites drops cached analytics whenever an order is created or
// changes status, and whenever a product is created or deleted, since the
// category breakdown joins through the live catalog.
func (s *AnalyticsService) InvalidateOnWrites() {
	forget := func(ctx context.Context, _ interface{}) {
		if err := s.opts.Forget(ctx, analyticsCachePattern); err != nil {
			logger.WithCtx(ctx).Warn("analytics: cache invalidation failed", "error", err)
		}
	}
	event.Listen(EventOrderCreated, forget)
	event.Listen(EventOrderStatusChanged, forget)
	event.Listen(EventCatalogChanged, forget)
}

// Revenue is the all-time total of completed orders.
func (s *AnalyticsService) Revenue(ctx context.Context) (Number, error) {
	return cache.Remember(ctx, "analytics:revenue", s.opts.CacheTTL, func(ctx context.Context) (Number, error) {
		total, err := s.ledger.RevenueTotal(ctx)
		return NewNumber(total), err
	})
}

// Sales is the completed revenue of each of the trailing months, oldest
// first, always exactly months points long. months < 1 uses the configured window.
func (s *AnalyticsService) Sales(ctx context.Context, months int) ([]SalesPoint, error) {
	if months < 1 {
		months = s.opts.WindowMonths
	}
	now := s.opts.Now().UTC()
	key := fmt.Sprintf("analytics:sales:%d:%s", months, monthKey(now))

	return cache.Remember(ctx, key, s.opts.CacheTTL, func(ctx context.Context) ([]SalesPoint, error) {
		window := MonthWindow(now, months)
		totals, err := s.ledger.MonthlyTotals(ctx, window[0], now)
		if err != nil {
			return nil, err
		}
		return FillMonths(window, totals), nil
	})
}

// Categories is the top-N-plus-Others percentage breakdown of completed
// line revenue. It is empty when there is no completed revenue.
func (s *AnalyticsService) Categories(ctx context.Context) ([]CategoryShare, error) {
	return cache.Remember(ctx, "analytics:categories", s.opts.CacheTTL, func(ctx context.Context) ([]CategoryShare, error) {
		rows, err := s.ledger.CategoryTotals(ctx)
		if err != nil {
			return nil, err
		}
		buckets, grand := BucketTopN(rows, s.opts.TopCategories)
		return NormalizePercentages(buckets, grand), nil
	})
}

// Dashboard runs the three passes concurrently. The first failure cancels
// the others and is returned.
func (s *AnalyticsService) Dashboard(ctx context.Context, months int) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.TotalRevenue, err = s.Revenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Sales, err = s.Sales(gctx, months)
		return err
	})
	g.Go(func() (err error) {
		d.Categories, err = s.Categories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("services: dashboard: %w", err)
	}
	return d, nil
}
