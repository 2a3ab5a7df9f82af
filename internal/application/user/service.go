package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Service handles operations on an established account.
type Service interface {
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) *domain.Result
	// CheckAuth resolves a raw access token (typically from a cookie) back
	// to its account. Every failure collapses into one uniform result.
	CheckAuth(ctx context.Context, token string) *domain.Result
}

type userStore interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type tokenVerifier interface {
	VerifyAccessToken(token string) (*jwtinfra.AccessClaims, error)
}

type service struct {
	users  userStore
	tokens tokenVerifier
}

func NewService(users userStore, tokens tokenVerifier) Service {
	return &service{users: users, tokens: tokens}
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) *domain.Result {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserNotFound()
		}
		slog.Error("change password lookup failed", "user_id", userID, "err", err)
		return domain.UnexpectedError("password change")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		slog.Warn("change password rejected: wrong current password", "user_id", userID)
		return domain.InvalidCurrentPassword()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("could not hash new password", "err", err)
		return domain.UnexpectedError("password change")
	}
	if err := s.users.UpdatePassword(ctx, u.Email, string(hash)); err != nil {
		slog.Error("could not update password", "user_id", userID, "err", err)
		return domain.UnexpectedError("password change")
	}

	slog.Info("password changed", "user_id", userID)
	return domain.PasswordChangeSuccess()
}

func (s *service) CheckAuth(ctx context.Context, token string) *domain.Result {
	if token == "" {
		return domain.CheckAuthFailed()
	}

	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		slog.Warn("auth check failed: bad token", "err", err)
		return domain.CheckAuthFailed()
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		slog.Warn("auth check failed: user not found", "user_id", claims.UserID)
		return domain.CheckAuthFailed()
	}

	return domain.CheckAuthSuccess(u)
}
