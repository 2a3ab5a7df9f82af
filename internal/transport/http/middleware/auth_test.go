package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, accessExpiry time.Duration) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider("test-secret", accessExpiry)
	require.NoError(t, err)
	return p
}

func claimsEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(claims.UserID))
	})
}

func accessToken(t *testing.T, p *jwtinfra.Provider) string {
	t.Helper()
	token, err := p.GenerateAccessToken(&domain.User{UserID: "u1", Email: "ann@x.com"})
	require.NoError(t, err)
	return token
}

func TestAuth_MissingToken(t *testing.T) {
	h := Auth(newProvider(t, time.Hour))(claimsEcho(t))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing access token")
}

func TestAuth_BearerHeader(t *testing.T) {
	p := newProvider(t, time.Hour)
	h := Auth(p)(claimsEcho(t))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken(t, p))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestAuth_CookieFallback(t *testing.T) {
	p := newProvider(t, time.Hour)
	h := Auth(p)(claimsEcho(t))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "accessToken", Value: accessToken(t, p)})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := newProvider(t, -time.Minute)
	h := Auth(newProvider(t, time.Hour))(claimsEcho(t))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken(t, expired))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestAuth_InvalidToken(t *testing.T) {
	h := Auth(newProvider(t, time.Hour))(claimsEcho(t))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuth_ResetTokenRejected(t *testing.T) {
	p := newProvider(t, time.Hour)
	reset, err := p.GeneratePasswordResetToken(&domain.User{UserID: "u1", Email: "ann@x.com"})
	require.NoError(t, err)

	h := Auth(p)(claimsEcho(t))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+reset)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}
