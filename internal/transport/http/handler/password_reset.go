package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-auth-api/internal/application/verification"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/validate"
)

// PasswordResetHandler handles the password-reset flow endpoints.
type PasswordResetHandler struct {
	svc verification.Service
}

func NewPasswordResetHandler(svc verification.Service) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	writeResult(w, h.svc.ForgotPassword(r.Context(), req.Email))
}

func (h *PasswordResetHandler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyResetTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	writeResult(w, h.svc.VerifyPasswordResetToken(r.Context(), req.ResetToken))
}

func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	writeResult(w, h.svc.ResetPassword(r.Context(), req.ResetToken, req.NewPassword))
}
