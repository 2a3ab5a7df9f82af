package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-auth-api/internal/application/login"
	"github.com/go-auth-api/internal/application/register"
	userapp "github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/validate"
)

// AuthHandler handles registration, login, session probe and logout.
type AuthHandler struct {
	registerSvc  register.Service
	loginSvc     login.Service
	userSvc      userapp.Service
	cookieMaxAge int // seconds
}

func NewAuthHandler(registerSvc register.Service, loginSvc login.Service, userSvc userapp.Service, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		registerSvc:  registerSvc,
		loginSvc:     loginSvc,
		userSvc:      userSvc,
		cookieMaxAge: cookieMaxAge,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	writeResult(w, h.registerSvc.Register(r.Context(), req))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	res := h.loginSvc.Login(r.Context(), req.Email, req.Password)
	if res.Success && res.Token != "" {
		setAccessCookie(w, res.Token, h.cookieMaxAge)
	}
	writeResult(w, res)
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	res := h.loginSvc.LoginWithGoogle(r.Context(), req.IDToken)
	if res.Success && res.Token != "" {
		setAccessCookie(w, res.Token, h.cookieMaxAge)
	}
	writeResult(w, res)
}

// CheckAuth probes the access-token cookie and returns the account it
// belongs to.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(accessTokenCookie); err == nil {
		token = c.Value
	}
	writeResult(w, h.userSvc.CheckAuth(r.Context(), token))
}

// Logout clears the cookie; tokens are stateless so there is nothing to
// revoke server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	clearAccessCookie(w)
	writeResult(w, domain.LogoutSuccess())
}
