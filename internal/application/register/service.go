package register

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/go-auth-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// Service handles new-account registration.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) *domain.Result
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// codeIssuer is the verification flow's entry point used on successful
// registration.
type codeIssuer interface {
	GenerateCode(ctx context.Context, email string) error
}

type service struct {
	users userStore
	codes codeIssuer
}

func NewService(users userStore, codes codeIssuer) Service {
	return &service{users: users, codes: codes}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) *domain.Result {
	if !validate.Email(req.Email) {
		return domain.InvalidEmailFormat()
	}

	// A duplicate is rejected flat, verified or not, so the response leaks
	// nothing about the account's verification state.
	_, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		slog.Warn("registration rejected: email already registered", "email", req.Email)
		return domain.EmailInUse()
	case !errors.Is(err, domain.ErrNotFound):
		slog.Error("registration lookup failed", "email", req.Email, "err", err)
		return domain.UnexpectedError("registration")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("could not hash password", "err", err)
		return domain.UnexpectedError("registration")
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsVerified:   false,
		ReferralCode: req.ReferralCode,
		AuthProvider: domain.AuthProviderEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Lost the unique-email race against a concurrent registration.
		if errors.Is(err, domain.ErrConflict) {
			slog.Warn("registration rejected: concurrent duplicate", "email", req.Email)
			return domain.EmailInUse()
		}
		slog.Error("could not create user", "email", req.Email, "err", err)
		return domain.UnexpectedError("registration")
	}

	// A code-dispatch failure leaves the account pending but recoverable
	// via resend; nothing is rolled back.
	if err := s.codes.GenerateCode(ctx, req.Email); err != nil {
		slog.Error("could not issue verification code", "email", req.Email, "err", err)
		return domain.UnexpectedError("registration")
	}

	slog.Info("user registered, verification email sent", "email", req.Email)
	return domain.RegistrationSuccess(u.Name, u.LastName, u.Email)
}
