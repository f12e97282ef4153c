package http

import (
	"net/http"

	"github.com/alae/iam/pkg/httpx"
)

// ProfileHandler is a bearer-protected resource open to any authenticated
// user holding the base authority.
type ProfileHandler struct{}

type profileResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username,omitempty"`
	Email       string   `json:"email,omitempty"`
	Authorities []string `json:"authorities"`
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())
	if principal == nil {
		httpx.WriteError(w, http.StatusUnauthorized, "not_authenticated", "")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profileResponse{
		ID:          principal.ID,
		Username:    principal.Username,
		Email:       principal.Email,
		Authorities: principal.Authorities,
	})
}

// AdminHandler is a bearer-protected resource gated on the admin role.
type AdminHandler struct{}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())
	if principal == nil {
		httpx.WriteError(w, http.StatusUnauthorized, "not_authenticated", "")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "hello, admin " + principal.Username,
	})
}
