package http

import (
	"net/http"

	"github.com/alae/iam/pkg/httpx"
)

// MeHandler returns the session's principal. Runs behind requireSession, so
// a principal is always present by the time it executes.
type MeHandler struct{}

type meResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())
	if principal == nil {
		httpx.WriteError(w, http.StatusUnauthorized, "not_authenticated", "")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, meResponse{
		ID:          principal.ID,
		Username:    principal.Username,
		Email:       principal.Email,
		Authorities: principal.Authorities,
	})
}
