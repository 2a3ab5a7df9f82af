package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// Auth returns middleware that validates the access token — Bearer header
// first, accessToken cookie as fallback — and injects claims into context.
// Expired and otherwise-invalid tokens get distinct messages.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, `{"error":"missing access token"}`, http.StatusUnauthorized)
				return
			}
			claims, err := provider.VerifyAccessToken(token)
			if err != nil {
				if errors.Is(err, domain.ErrExpired) {
					http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
					return
				}
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("accessToken"); err == nil {
		return c.Value
	}
	return ""
}

// ClaimsFromContext extracts access-token claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.AccessClaims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.AccessClaims)
	return c, ok
}
