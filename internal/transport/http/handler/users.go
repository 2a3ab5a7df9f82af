package handler

import (
	"encoding/json"
	"net/http"

	userapp "github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/validate"
	"github.com/go-auth-api/internal/transport/http/middleware"
)

// UserHandler handles authenticated account endpoints.
type UserHandler struct {
	svc userapp.Service
}

func NewUserHandler(svc userapp.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeResult(w, domain.CheckAuthFailed())
		return
	}
	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeResult(w, domain.ValidationError(err.Error()))
		return
	}
	writeResult(w, h.svc.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword))
}
