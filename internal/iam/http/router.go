// Package http exposes the IAM service over HTTP: registration and login,
// session-backed browser endpoints, and bearer-token protected resources.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/internal/iam/service"
	"github.com/alae/iam/internal/iam/store"
	"github.com/alae/iam/pkg/httpx"
	"github.com/alae/iam/pkg/slogx"
)

const sessionCookieName = "iam_session"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	// SecureCookies marks the session cookie Secure. Off for local HTTP
	// development, on everywhere else.
	SecureCookies bool

	Registrar      *service.Registrar
	Authenticator  *service.Authenticator
	SessionService *service.SessionService
	TokenService   *service.TokenService
}

func NewRouter(st store.Store, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route whose carrier is configured. The
// session routes need SessionService; the bearer routes need TokenService;
// either may be absent when that carrier is disabled.
func (r *Router) ApplyRoutes() {
	if r.SessionService != nil {
		r.registerSessionRoutes()
	}
	if r.TokenService != nil {
		r.registerBearerRoutes()
	}
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessionRoutes() {
	registerHandler := &RegisterHandler{Registrar: r.Registrar}
	loginHandler := &LoginHandler{
		Authenticator:  r.Authenticator,
		SessionService: r.SessionService,
		SecureCookies:  r.SecureCookies,
	}
	logoutHandler := &LogoutHandler{
		SessionService: r.SessionService,
		SecureCookies:  r.SecureCookies,
	}

	// Credential endpoints take the strict limit; brute force lives here.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(&MeHandler{},
			httpx.RateLimitByIP(httpx.LenientLimit),
			requireSession(r.SessionService),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerBearerRoutes() {
	r.Mux.Handle("GET /v1/profile",
		httpx.Chain(&ProfileHandler{},
			httpx.RateLimitByIP(httpx.LenientLimit),
			requireBearer(r.TokenService),
			requireAuthority(domain.AuthorityUser),
		),
	)
	r.Mux.Handle("GET /v1/admin",
		httpx.Chain(&AdminHandler{},
			httpx.RateLimitByIP(httpx.LenientLimit),
			requireBearer(r.TokenService),
			requireAuthority(domain.RoleAuthority("admin")),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

func setSessionCookie(w http.ResponseWriter, handle string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    handle,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
