// Package controllers adapts HTTP requests to the services and maps service
// errors onto status codes.
package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/filters"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

// fail writes the response for err. Anything unrecognised is a 500 and is
// logged with the request id; its text never reaches the client.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, filters.ErrUnsupportedSort):
		c.ValidationError(map[string]string{"sortBy": "The selected sortBy is invalid."})
	case errors.Is(err, filters.ErrInvalidPriceRange):
		c.ValidationError(map[string]string{"minPrice": "The minPrice must not be greater than maxPrice."})
	case errors.Is(err, services.ErrEmptyCart):
		c.ValidationError(map[string]string{"productIds": "The cart must contain at least one product."})
	case errors.Is(err, services.ErrUnknownProduct):
		c.ValidationError(map[string]string{"productIds": "The cart references a product that does not exist."})
	case errors.Is(err, repositories.ErrMissingRelation):
		c.ValidationError(map[string]string{"extension": "A referenced category or author does not exist."})
	case errors.Is(err, repositories.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrInvalidTransition):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.Error(http.StatusConflict, "Resource already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusUnauthorized, "Invalid credentials")
	default:
		logger.WithCtx(c.Context()).Error("request failed", "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}
