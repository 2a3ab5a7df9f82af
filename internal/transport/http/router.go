package http

import (
	"net/http"

	"github.com/go-auth-api/internal/application/login"
	"github.com/go-auth-api/internal/application/register"
	userapp "github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/application/verification"
	"github.com/go-auth-api/internal/config"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	rediscache "github.com/go-auth-api/internal/infrastructure/redis"
	"github.com/go-auth-api/internal/infrastructure/smtp"
	"github.com/go-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/go-auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       UserRepository
	Cache          rediscache.Cache
	Mailer         smtp.Mailer
	JWTProvider    *jwtinfra.Provider
	GoogleVerifier IdentityVerifier
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		UserRepo:         deps.UserRepo,
		Cache:            deps.Cache,
		Mailer:           deps.Mailer,
		Tokens:           deps.JWTProvider,
		CodeExpiration:   cfg.CodeExpiration,
		ResetLinkBaseURL: cfg.ResetLinkBaseURL,
	})
	registerSvc := register.NewService(deps.UserRepo, verificationSvc)
	loginSvc := login.NewService(login.ServiceDeps{
		UserRepo: deps.UserRepo,
		Cache:    deps.Cache,
		Tokens:   deps.JWTProvider,
		Verifier: deps.GoogleVerifier,
	})
	userSvc := userapp.NewService(deps.UserRepo, deps.JWTProvider)

	cookieMaxAge := int(cfg.CookieMaxAge.Seconds())
	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(registerSvc, loginSvc, userSvc, cookieMaxAge)
	verificationH := handler.NewVerificationHandler(verificationSvc, cookieMaxAge)
	resetH := handler.NewPasswordResetHandler(verificationSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		// ── Public routes ────────────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/google", authH.GoogleLogin)
		r.With(sensitiveRL.Limit).Post("/auth/verify-code", verificationH.VerifyCode)
		r.With(sensitiveRL.Limit).Post("/auth/resend-code", verificationH.ResendCode)
		r.With(sensitiveRL.Limit).Post("/auth/forgot-password", resetH.ForgotPassword)
		r.Post("/auth/verify-reset-token", resetH.VerifyResetToken)
		r.With(sensitiveRL.Limit).Post("/auth/reset-password", resetH.ResetPassword)
		r.Get("/auth/check", authH.CheckAuth)
		r.Post("/auth/logout", authH.Logout)

		// ── Authenticated routes ─────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Post("/users/change-password", userH.ChangePassword)
		})
	})

	return r
}
