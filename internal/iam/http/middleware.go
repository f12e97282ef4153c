package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alae/iam/internal/iam/authz"
	"github.com/alae/iam/internal/iam/service"
	"github.com/alae/iam/pkg/httpx"
	"github.com/alae/iam/pkg/slogx"
)

// requireSession resolves the session cookie into a principal. Requests
// without a live session are rejected with 401 before the handler runs.
func requireSession(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "not_authenticated", "no active session")
				return
			}

			principal, err := sessions.Resolve(ctx, cookie.Value)
			if err != nil {
				if errors.Is(err, service.ErrNotAuthenticated) {
					clearSessionCookie(w)
					httpx.WriteError(w, http.StatusUnauthorized, "not_authenticated", "no active session")
					return
				}
				slogx.FromContext(ctx).Error("session resolve failed", "err", err)
				httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
		})
	}
}

// requireBearer resolves an Authorization bearer token into a principal.
// Failures answer per RFC 6750: a WWW-Authenticate challenge plus our JSON
// error envelope.
func requireBearer(tokens *service.TokenService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

			principal, err := tokens.Validate(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("bearer token rejected", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
		})
	}
}

// requireAuthority gates a route on a single authority. Runs after one of
// the auth middlewares; an anonymous request still answers 401, not 403.
func requireAuthority(required string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := authz.Authorize(principalFrom(r.Context()), required)
			switch {
			case errors.Is(err, authz.ErrNotAuthenticated):
				httpx.WriteError(w, http.StatusUnauthorized, "not_authenticated", "")
			case errors.Is(err, authz.ErrInsufficientPrivilege):
				httpx.WriteError(w, http.StatusForbidden, "insufficient_privilege", "requires "+required)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
