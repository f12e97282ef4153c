package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alae/iam/internal/iam/service"
	"github.com/alae/iam/internal/iam/store"
	"github.com/alae/iam/internal/iam/store/drivers/sqlite"
	"github.com/alae/iam/pkg/jwtx"
	"github.com/alae/iam/pkg/passx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://idp.example.com/realms/iam"
	testAudience = "iam-service"
	testKID      = "test-key-1"
)

type testEnv struct {
	server *httptest.Server
	client *http.Client
	store  store.Store
	key    *rsa.PrivateKey
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.Add(testKID, &key.PublicKey)

	verifier := jwtx.NewRS256(keys.Keyfunc, jwtx.VerifyOptions{
		Issuer:   testIssuer,
		Audience: testAudience,
		Leeway:   time.Minute,
	})

	hasher := passx.New(passx.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(st, "test", logger)
	router.Registrar = &service.Registrar{Store: st, Hasher: hasher}
	router.Authenticator = &service.Authenticator{Store: st, Hasher: hasher}
	router.SessionService = service.NewSessionService(st.Sessions(), time.Hour)
	router.TokenService = &service.TokenService{Verifier: verifier}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server: server,
		client: &http.Client{Jar: jar},
		store:  st,
		key:    key,
	}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := e.client.Post(e.server.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path, bearer string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (e *testEnv) signToken(t *testing.T, roles []string) string {
	t.Helper()

	now := time.Now().UTC()
	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "subject-1",
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		RealmAccess:       jwtx.RealmAccess{Roles: roles},
		PreferredUsername: "alice",
		Email:             "alice@example.com",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKID

	signed, err := token.SignedString(e.key)
	require.NoError(t, err)
	return signed
}

func TestSessionFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.postJSON(t, "/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[registerResponse](t, resp)
	require.NotEmpty(t, created.ID)

	resp = env.postJSON(t, "/v1/auth/login", map[string]string{
		"identifier": "alice",
		"password":   "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logged := decodeBody[loginResponse](t, resp)
	require.Equal(t, created.ID, logged.ID)
	require.Equal(t, []string{"ROLE_USER"}, logged.Authorities)

	resp = env.get(t, "/v1/auth/me", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[meResponse](t, resp)
	require.Equal(t, created.ID, me.ID)
	require.Equal(t, "alice@example.com", me.Email)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/v1/auth/logout", nil)
	require.NoError(t, err)
	resp, err = env.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.get(t, "/v1/auth/me", "")
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.postJSON(t, "/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[registerResponse](t, resp)

	t.Run("wrong password", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/auth/login", map[string]string{
			"identifier": "alice",
			"password":   "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		require.Equal(t, "invalid_credentials", body["error"])
	})

	t.Run("unknown identifier answers the same", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/auth/login", map[string]string{
			"identifier": "nobody",
			"password":   "whatever",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		require.Equal(t, "invalid_credentials", body["error"])
	})

	t.Run("locked account", func(t *testing.T) {
		require.NoError(t, env.store.Users().SetLocked(ctx, created.ID, true))
		t.Cleanup(func() { _ = env.store.Users().SetLocked(ctx, created.ID, false) })

		resp := env.postJSON(t, "/v1/auth/login", map[string]string{
			"identifier": "alice",
			"password":   "correct horse",
		})
		require.Equal(t, http.StatusLocked, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		require.Equal(t, "account_locked", body["error"])
	})

	t.Run("disabled account", func(t *testing.T) {
		require.NoError(t, env.store.Users().SetEnabled(ctx, created.ID, false))
		t.Cleanup(func() { _ = env.store.Users().SetEnabled(ctx, created.ID, true) })

		resp := env.postJSON(t, "/v1/auth/login", map[string]string{
			"identifier": "alice",
			"password":   "correct horse",
		})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		require.Equal(t, "account_disabled", body["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/auth/login", map[string]string{"identifier": "alice"})
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRegisterConflicts(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.postJSON(t, "/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("username conflict", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/auth/register", map[string]string{
			"username": "alice",
			"email":    "fresh@example.com",
			"password": "pw",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		require.Equal(t, "username_taken", body["error"])
	})

	t.Run("email conflict", func(t *testing.T) {
		resp := env.postJSON(t, "/v1/auth/register", map[string]string{
			"username": "alice2",
			"email":    "alice@example.com",
			"password": "pw",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		require.Equal(t, "email_taken", body["error"])
	})
}

func TestBearerRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	t.Run("profile with user role", func(t *testing.T) {
		token := env.signToken(t, []string{"USER"})
		resp := env.get(t, "/v1/profile", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[profileResponse](t, resp)
		require.Equal(t, "subject-1", body.ID)
		require.Equal(t, []string{"ROLE_USER"}, body.Authorities)
	})

	t.Run("admin requires the admin role", func(t *testing.T) {
		token := env.signToken(t, []string{"USER"})
		resp := env.get(t, "/v1/admin", token)
		resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin with the admin role", func(t *testing.T) {
		token := env.signToken(t, []string{"USER", "admin"})
		resp := env.get(t, "/v1/admin", token)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		resp := env.get(t, "/v1/profile", "")
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := env.get(t, "/v1/profile", "not.a.jwt")
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token without roles is authenticated but unprivileged", func(t *testing.T) {
		token := env.signToken(t, nil)
		resp := env.get(t, "/v1/profile", token)
		resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.get(t, "/livez", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	live := decodeBody[healthResponse](t, resp)
	require.Equal(t, "ok", live.Status)

	resp = env.get(t, "/readyz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ready := decodeBody[healthResponse](t, resp)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
}

func TestSessionCookieFlags(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.postJSON(t, "/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.postJSON(t, "/v1/auth/login", map[string]string{
		"identifier": "alice",
		"password":   "pw",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	require.True(t, session.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, session.SameSite)
	require.NotEmpty(t, session.Value)
}
