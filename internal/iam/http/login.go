package http

import (
	"encoding/json"
	"net/http"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/internal/iam/service"
	"github.com/alae/iam/pkg/httpx"
	"github.com/alae/iam/pkg/slogx"
)

// LoginHandler verifies credentials and starts a session. The identifier
// field accepts a username or an email address.
type LoginHandler struct {
	Authenticator  *service.Authenticator
	SessionService *service.SessionService
	SecureCookies  bool
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "identifier and password are required")
		return
	}

	outcome, err := h.Authenticator.Authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		log.Error("authentication errored", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		// Fall through below.
	case domain.OutcomeAccountLocked:
		httpx.WriteError(w, http.StatusLocked, "account_locked", "account is locked")
		return
	case domain.OutcomeAccountDisabled:
		httpx.WriteError(w, http.StatusForbidden, "account_disabled", "account is disabled")
		return
	default:
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid identifier or password")
		return
	}

	handle, err := h.SessionService.Begin(ctx, outcome.Principal)
	if err != nil {
		log.Error("failed to begin session", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	setSessionCookie(w, handle, h.SecureCookies)

	log.Info("login succeeded", "user_id", outcome.Principal.ID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		ID:          outcome.Principal.ID,
		Username:    outcome.Principal.Username,
		Email:       outcome.Principal.Email,
		Authorities: outcome.Principal.Authorities,
	})
}
