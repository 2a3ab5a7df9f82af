package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	rediscache "github.com/go-auth-api/internal/infrastructure/redis"
	"github.com/go-auth-api/internal/pkg/random"
	"golang.org/x/crypto/bcrypt"
)

// Service drives the email-verification and password-reset state machines.
//
// Per email the verification states are NoCode → CodePending → Verified,
// with re-entry into CodePending via resend after expiry. Password reset
// runs NoRequest → ResetPending → Consumed, re-requestable after expiry.
// Both lean on the cache's TTL for expiry; no sweep job exists.
type Service interface {
	// GenerateCode issues a fresh code for email, overwriting any pending
	// one, and dispatches it. Callers gate on resend policy themselves.
	GenerateCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) *domain.Result
	ResendCode(ctx context.Context, email string) *domain.Result
	ForgotPassword(ctx context.Context, email string) *domain.Result
	VerifyPasswordResetToken(ctx context.Context, token string) *domain.Result
	ResetPassword(ctx context.Context, token, newPassword string) *domain.Result
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetVerified(ctx context.Context, email string, verified bool) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type mailDispatcher interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetLink(to, link string) error
}

type tokenCodec interface {
	GenerateAccessToken(u *domain.User) (string, error)
	GeneratePasswordResetToken(u *domain.User) (string, error)
	VerifyPasswordResetToken(token string) (*jwtinfra.ResetClaims, error)
}

type service struct {
	users            userStore
	cache            rediscache.Cache
	mailer           mailDispatcher
	tokens           tokenCodec
	codeExpiration   time.Duration
	resetLinkBaseURL string
}

type ServiceDeps struct {
	UserRepo         userStore
	Cache            rediscache.Cache
	Mailer           mailDispatcher
	Tokens           tokenCodec
	CodeExpiration   time.Duration
	ResetLinkBaseURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:            deps.UserRepo,
		cache:            deps.Cache,
		mailer:           deps.Mailer,
		tokens:           deps.Tokens,
		codeExpiration:   deps.CodeExpiration,
		resetLinkBaseURL: deps.ResetLinkBaseURL,
	}
}

func (s *service) GenerateCode(ctx context.Context, email string) error {
	code, err := random.VerificationCode()
	if err != nil {
		return err
	}
	// Last write wins: a concurrent generate simply replaces the code, and
	// only the most recently emailed value can be typed back correctly.
	if err := s.cache.SetWithTTL(ctx, rediscache.VerificationKey(email), code, s.codeExpiration); err != nil {
		return err
	}
	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		return err
	}
	slog.Info("verification code dispatched", "email", email)
	return nil
}

func (s *service) VerifyCode(ctx context.Context, email, code string) *domain.Result {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("user not found during verification", "email", email)
			return domain.UserNotFound()
		}
		slog.Error("verification lookup failed", "email", email, "err", err)
		return domain.UnexpectedError("verification")
	}

	if u.IsVerified {
		slog.Info("user is already verified", "email", email)
		return domain.UserAlreadyVerified()
	}

	stored, err := s.cache.Get(ctx, rediscache.VerificationKey(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("verification code expired", "email", email)
			return domain.VerificationCodeExpired()
		}
		slog.Error("verification cache read failed", "email", email, "err", err)
		return domain.UnexpectedError("verification")
	}

	// A wrong guess leaves the stored code intact; retries are allowed
	// until the TTL lapses.
	if stored != code {
		slog.Info("invalid verification code", "email", email)
		return domain.InvalidVerificationCode()
	}

	if err := s.users.SetVerified(ctx, email, true); err != nil {
		slog.Error("could not mark user verified", "email", email, "err", err)
		return domain.UnexpectedError("verification")
	}
	if err := s.cache.Delete(ctx, rediscache.VerificationKey(email)); err != nil {
		slog.Warn("could not delete verification code", "email", email, "err", err)
	}

	u.IsVerified = true
	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		slog.Error("could not issue access token after verification", "email", email, "err", err)
		return domain.UnexpectedError("verification")
	}
	return domain.VerificationSuccess(u, token)
}

func (s *service) ResendCode(ctx context.Context, email string) *domain.Result {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("user not found for resending code", "email", email)
			return domain.UserNotFound()
		}
		slog.Error("resend lookup failed", "email", email, "err", err)
		return domain.UnexpectedError("resend")
	}

	if u.IsVerified {
		slog.Info("user already verified", "email", email)
		return domain.UserAlreadyVerified()
	}

	remaining, err := s.cache.TTL(ctx, rediscache.VerificationKey(email))
	if err != nil {
		slog.Error("resend ttl read failed", "email", email, "err", err)
		return domain.UnexpectedError("resend")
	}
	if remaining > 0 {
		slog.Info("previous code still valid", "email", email, "remaining", remaining)
		return domain.VerificationCodeNotExpired(email, ceilSeconds(remaining))
	}

	if err := s.GenerateCode(ctx, email); err != nil {
		slog.Error("could not resend verification code", "email", email, "err", err)
		return domain.UnexpectedError("resend")
	}
	return domain.VerificationEmailResent()
}

func (s *service) ForgotPassword(ctx context.Context, email string) *domain.Result {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("user not found for password reset", "email", email)
			return domain.NonExistentEmailForPasswordReset()
		}
		slog.Error("password reset lookup failed", "email", email, "err", err)
		return domain.UnexpectedError("password reset")
	}

	resetToken, err := s.tokens.GeneratePasswordResetToken(u)
	if err != nil {
		slog.Error("could not mint password reset token", "email", email, "err", err)
		return domain.UnexpectedError("password reset")
	}

	// The cache entry is the single source of truth for "currently active
	// token": writing it invalidates any earlier, still-signature-valid
	// token for this email.
	if err := s.cache.SetWithTTL(ctx, rediscache.PasswordResetKey(u.Email), resetToken, s.codeExpiration); err != nil {
		slog.Error("could not store password reset token", "email", email, "err", err)
		return domain.UnexpectedError("password reset")
	}

	link := s.resetLinkBaseURL + "?resetToken=" + resetToken
	if err := s.mailer.SendPasswordResetLink(email, link); err != nil {
		slog.Error("could not send password reset email", "email", email, "err", err)
		return domain.UnexpectedError("password reset")
	}
	return domain.PasswordResetLinkSent()
}

func (s *service) VerifyPasswordResetToken(ctx context.Context, token string) *domain.Result {
	if _, res := s.checkResetToken(ctx, token); res != nil {
		return res
	}
	return domain.PasswordResetLinkVerified()
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) *domain.Result {
	claims, res := s.checkResetToken(ctx, token)
	if res != nil {
		return res
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("could not hash new password", "err", err)
		return domain.UnexpectedError("password reset")
	}
	if err := s.users.UpdatePassword(ctx, claims.Email, string(hash)); err != nil {
		slog.Error("could not update password", "email", claims.Email, "err", err)
		return domain.UnexpectedError("password reset")
	}

	// Deletion strictly after the password write commits: a crash between
	// the two leaves a stale token bounded by its original TTL instead of
	// a consumed token that still works.
	if err := s.cache.Delete(ctx, rediscache.PasswordResetKey(claims.Email)); err != nil {
		slog.Warn("could not delete consumed reset token", "email", claims.Email, "err", err)
	}
	return domain.PasswordResetSuccess()
}

// checkResetToken runs the shared verify-then-compare step. It returns the
// decoded claims on success, or the Result to surface on failure.
func (s *service) checkResetToken(ctx context.Context, token string) (*jwtinfra.ResetClaims, *domain.Result) {
	claims, err := s.tokens.VerifyPasswordResetToken(token)
	if err != nil {
		return nil, domain.PasswordResetLinkExpired()
	}

	stored, err := s.cache.Get(ctx, rediscache.PasswordResetKey(claims.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.PasswordResetLinkExpired()
		}
		slog.Error("reset token cache read failed", "email", claims.Email, "err", err)
		return nil, domain.UnexpectedError("password reset")
	}
	if stored != token {
		return nil, domain.InvalidPasswordResetLink()
	}
	return claims, nil
}

func ceilSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}
