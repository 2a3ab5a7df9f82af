package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-auth-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper for transport-level
// failures (bad body, unknown action) that never reach a flow.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

const accessTokenCookie = "accessToken"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeResult maps a flow's tagged result onto the transport verbatim:
// the flow decided the status, the handler only performs the write.
func writeResult(w http.ResponseWriter, res *domain.Result) {
	writeJSON(w, res.Status, res)
}

func setAccessCookie(w http.ResponseWriter, token string, maxAgeSeconds int) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAccessCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
