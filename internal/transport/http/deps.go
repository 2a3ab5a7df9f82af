package http

import (
	"context"

	"github.com/go-auth-api/internal/domain"
)

// UserRepository is the minimal interface the router requires from the
// credential store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	SetVerified(ctx context.Context, email string, verified bool) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// IdentityVerifier is the minimal interface the router requires from the
// external identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error)
}
