package http

import (
	"net/http"

	"github.com/alae/iam/internal/iam/service"
	"github.com/alae/iam/pkg/httpx"
	"github.com/alae/iam/pkg/slogx"
)

// LogoutHandler ends the current session. Logging out without a session, or
// with a stale cookie, still answers 204: the desired state already holds.
type LogoutHandler struct {
	SessionService *service.SessionService
	SecureCookies  bool
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.SessionService.End(ctx, cookie.Value); err != nil {
			slogx.FromContext(ctx).Error("failed to end session", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
			return
		}
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
