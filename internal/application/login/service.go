package login

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-auth-api/internal/domain"
	rediscache "github.com/go-auth-api/internal/infrastructure/redis"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/go-auth-api/internal/pkg/random"
	"golang.org/x/crypto/bcrypt"
)

// Service handles password and external-provider logins.
type Service interface {
	Login(ctx context.Context, email, password string) *domain.Result
	LoginWithGoogle(ctx context.Context, idToken string) *domain.Result
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type tokenIssuer interface {
	GenerateAccessToken(u *domain.User) (string, error)
}

type identityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error)
}

type service struct {
	users    userStore
	cache    rediscache.Cache
	tokens   tokenIssuer
	verifier identityVerifier
}

type ServiceDeps struct {
	UserRepo userStore
	Cache    rediscache.Cache
	Tokens   tokenIssuer
	Verifier identityVerifier
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:    deps.UserRepo,
		cache:    deps.Cache,
		tokens:   deps.Tokens,
		verifier: deps.Verifier,
	}
}

func (s *service) Login(ctx context.Context, email, password string) *domain.Result {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Warn("failed login attempt", "email", email)
			return domain.InvalidEmailOrPassword()
		}
		slog.Error("login lookup failed", "email", email, "err", err)
		return domain.UnexpectedError("login")
	}

	// Unknown email and wrong password produce the identical result.
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		slog.Warn("failed login attempt", "email", email)
		return domain.InvalidEmailOrPassword()
	}

	if !u.IsVerified {
		remaining, err := s.cache.TTL(ctx, rediscache.VerificationKey(email))
		if err != nil {
			slog.Error("login ttl read failed", "email", email, "err", err)
			return domain.UnexpectedError("login")
		}
		return domain.UserNotVerified(email, ceilSeconds(remaining))
	}

	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		slog.Error("could not issue access token", "email", email, "err", err)
		return domain.UnexpectedError("login")
	}

	slog.Info("user logged in", "email", email)
	return domain.LoginSuccess(u, token)
}

func (s *service) LoginWithGoogle(ctx context.Context, idToken string) *domain.Result {
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		slog.Warn("google token verification failed", "err", err)
		return domain.GoogleAuthFailed()
	}

	u, err := s.users.GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		return s.issue(u)
	case !errors.Is(err, domain.ErrNotFound):
		slog.Error("google login lookup failed", "email", identity.Email, "err", err)
		return domain.UnexpectedError("login")
	}

	u, err = s.autoRegister(ctx, identity)
	if err != nil {
		slog.Error("google auto-registration failed", "email", identity.Email, "err", err)
		return domain.UnexpectedError("login")
	}
	slog.Info("user auto-registered via google", "email", identity.Email)
	return s.issue(u)
}

// autoRegister creates a verified GOOGLE account with a random unusable
// password. The loser of a concurrent first-login race falls back to the
// lookup instead of erroring.
func (s *service) autoRegister(ctx context.Context, identity *domain.ExternalIdentity) (*domain.User, error) {
	password, err := random.UnusablePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         identity.GivenName,
		LastName:     identity.LastName,
		Email:        identity.Email,
		PasswordHash: string(hash),
		IsVerified:   true,
		AuthProvider: domain.AuthProviderGoogle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.users.GetByEmail(ctx, identity.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) issue(u *domain.User) *domain.Result {
	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		slog.Error("could not issue access token", "email", u.Email, "err", err)
		return domain.UnexpectedError("login")
	}
	return domain.LoginSuccess(u, token)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
