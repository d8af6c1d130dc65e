package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
)

// maxSalesMonths caps ?months= on the sales and dashboard endpoints.
const maxSalesMonths = 60

type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

func (ac *AnalyticsController) Revenue(c *ctx.Context) {
	total, err := ac.analytics.Revenue(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]services.Number{"totalRevenue": total})
}

func (ac *AnalyticsController) Sales(c *ctx.Context) {
	months, ok := monthsParam(c)
	if !ok {
		return
	}

	series, err := ac.analytics.Sales(c.Context(), months)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(series)
}

func (ac *AnalyticsController) Categories(c *ctx.Context) {
	shares, err := ac.analytics.Categories(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(shares)
}

func (ac *AnalyticsController) Dashboard(c *ctx.Context) {
	months, ok := monthsParam(c)
	if !ok {
		return
	}

	d, err := ac.analytics.Dashboard(c.Context(), months)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(d)
}

// monthsParam reads ?months=. Absent means the configured window (0).
func monthsParam(c *ctx.Context) (int, bool) {
	raw := c.Query("months")
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxSalesMonths {
		c.ValidationError(map[string]string{
			"months": "The months must be between 1 and " + strconv.Itoa(maxSalesMonths) + ".",
		})
		return 0, false
	}
	return n, true
}
