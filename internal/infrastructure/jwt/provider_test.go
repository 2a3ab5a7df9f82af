package jwtinfra

import (
	"testing"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		UserID:   "u1",
		Name:     "Ann",
		LastName: "Lee",
		Email:    "ann@x.com",
	}
}

func TestNewProvider_EmptySecret(t *testing.T) {
	_, err := NewProvider("", time.Hour)
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	p, err := NewProvider("secret", time.Hour)
	require.NoError(t, err)

	token, err := p.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := p.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "Lee", claims.LastName)
}

func TestResetToken_RoundTrip(t *testing.T) {
	p, err := NewProvider("secret", time.Hour)
	require.NoError(t, err)

	token, err := p.GeneratePasswordResetToken(testUser())
	require.NoError(t, err)

	claims, err := p.VerifyPasswordResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypePasswordReset, claims.Type)
	assert.Equal(t, "ann@x.com", claims.Email)
}

func TestTokenTypes_NotInterchangeable(t *testing.T) {
	p, err := NewProvider("secret", time.Hour)
	require.NoError(t, err)

	access, err := p.GenerateAccessToken(testUser())
	require.NoError(t, err)
	reset, err := p.GeneratePasswordResetToken(testUser())
	require.NoError(t, err)

	_, err = p.VerifyPasswordResetToken(access)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = p.VerifyAccessToken(reset)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	p, err := NewProvider("secret", -time.Minute)
	require.NoError(t, err)

	token, err := p.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = p.VerifyAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	p1, err := NewProvider("secret-one", time.Hour)
	require.NoError(t, err)
	p2, err := NewProvider("secret-two", time.Hour)
	require.NoError(t, err)

	token, err := p1.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = p2.VerifyAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	p, err := NewProvider("secret", time.Hour)
	require.NoError(t, err)

	_, err = p.VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
