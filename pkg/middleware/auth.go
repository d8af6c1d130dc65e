package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/response"
)

type claimsKey struct{}

// Auth requires a valid bearer token and stores its claims on the context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		if token == "" || token == header {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger.WithCtx(r.Context()).Debug("rejected token", "error", err)
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims stored by Auth, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

func RoleFromCtx(r *http.Request) (string, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.Role, true
}

func UserIDFromCtx(r *http.Request) (uint, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
