package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-auth-api/internal/application/verification"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/validate"
)

// VerificationHandler handles email-verification endpoints.
type VerificationHandler struct {
	svc          verification.Service
	cookieMaxAge int // seconds
}

func NewVerificationHandler(svc verification.Service, cookieMaxAge int) *VerificationHandler {
	return &VerificationHandler{svc: svc, cookieMaxAge: cookieMaxAge}
}

func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	res := h.svc.VerifyCode(r.Context(), req.Email, req.Code)
	if res.Success && res.Token != "" {
		setAccessCookie(w, res.Token, h.cookieMaxAge)
	}
	writeResult(w, res)
}

func (h *VerificationHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	writeResult(w, h.svc.ResendCode(r.Context(), req.Email))
}
