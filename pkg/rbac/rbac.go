// Package rbac gates routes by the role carried in the access token.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/bookstore/pkg/middleware"
	"github.com/shashiranjanraj/bookstore/pkg/response"
)

// HasRole allows only the listed roles. middleware.Auth must run first.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
