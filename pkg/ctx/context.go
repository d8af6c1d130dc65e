// Package ctx gives handlers a single *Context instead of (w, r):
//
//	func (c *ProductController) Show(cx *ctx.Context) {
//	    id, ok := cx.ParamUint("id")
//	    ...
//	    cx.Success(product)
//	}
//
//	api.Get("/products/{id}", "products.show", ctx.Wrap(products.Show))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bookstore/pkg/bind"
	"github.com/shashiranjanraj/bookstore/pkg/middleware"
	"github.com/shashiranjanraj/bookstore/pkg/response"
	"github.com/shashiranjanraj/bookstore/pkg/validate"
)

type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to net/http.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

type Context struct {
	W http.ResponseWriter
	R *http.Request

	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a positive numeric path parameter.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (c *Context) Query(key string) string {
	return strings.TrimSpace(c.R.URL.Query().Get(key))
}

// QueryInt returns def when key is absent or not an integer.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// QueryAll accepts both repeated keys (?id=a&id=b) and comma lists (?id=a,b).
// Blank entries are dropped.
func (c *Context) QueryAll(key string) []string {
	var out []string
	for _, raw := range c.R.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Context) Context() context.Context { return c.R.Context() }

// UserID is the authenticated user, if middleware.Auth ran.
func (c *Context) UserID() (uint, bool) {
	return middleware.UserIDFromCtx(c.R)
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes and validates the body. On failure it writes 400 or 422
// and returns false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// Validate runs validation rules on an already-populated struct.
func (c *Context) Validate(v any) map[string]string {
	return validate.Struct(v)
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

func (c *Context) Success(data any) {
	c.status = http.StatusOK
	response.Success(c.W, data)
}

func (c *Context) Created(data any) {
	c.status = http.StatusCreated
	response.Created(c.W, data)
}

func (c *Context) NoContent() {
	c.status = http.StatusNoContent
	response.NoContent(c.W)
}

func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusUnprocessableEntity
	response.ValidationError(c.W, errs)
}

func (c *Context) NotFound(message ...string) {
	msg := "Not found"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusNotFound, msg)
}

func (c *Context) Unauthorized() {
	c.Error(http.StatusUnauthorized, "Unauthorized")
}

// WrittenStatus is the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
