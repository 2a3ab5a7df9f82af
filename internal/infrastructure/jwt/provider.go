package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Token type claims. Verification checks the type exactly, so an access
// token is rejected wherever a reset token is expected and vice versa.
const (
	TokenTypeAccess        = "access"
	TokenTypePasswordReset = "password_reset"
)

// resetTokenExpiry is fixed regardless of the configured access expiry:
// a reset link is only ever meant to be clicked once, shortly after it
// was requested.
const resetTokenExpiry = 30 * time.Minute

// AccessClaims is the payload of a stateless access token.
type AccessClaims struct {
	Type     string `json:"type"`
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	jwt.RegisteredClaims
}

// ResetClaims is the payload of a password-reset token.
type ResetClaims struct {
	Type   string `json:"type"`
	Email  string `json:"email"`
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs for both token kinds.
type Provider struct {
	secret       []byte
	accessExpiry time.Duration
}

func NewProvider(secret string, accessExpiry time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Provider{secret: []byte(secret), accessExpiry: accessExpiry}, nil
}

func (p *Provider) GenerateAccessToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Type:     TokenTypeAccess,
		UserID:   u.UserID,
		Email:    u.Email,
		Name:     u.Name,
		LastName: u.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *Provider) GeneratePasswordResetToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := ResetClaims{
		Type:   TokenTypePasswordReset,
		Email:  u.Email,
		UserID: u.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// VerifyAccessToken validates signature, expiry and the type claim.
// Expired tokens yield an error wrapping domain.ErrExpired; every other
// failure wraps domain.ErrUnauthorized.
func (p *Provider) VerifyAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := p.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess {
		return nil, fmt.Errorf("wrong token type %q: %w", claims.Type, domain.ErrUnauthorized)
	}
	return claims, nil
}

// VerifyPasswordResetToken is the reset-side counterpart of
// VerifyAccessToken.
func (p *Provider) VerifyPasswordResetToken(tokenStr string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := p.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypePasswordReset || claims.Email == "" {
		return nil, fmt.Errorf("wrong token type %q: %w", claims.Type, domain.ErrUnauthorized)
	}
	return claims, nil
}

func (p *Provider) parse(tokenStr string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("token expired: %w", domain.ErrExpired)
		}
		return fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	return nil
}
