package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alae/iam/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// stubVerifier returns canned claims or a canned error.
type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(string) (jwtx.Claims, error) {
	return s.claims, s.err
}

func TestTokenValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("maps roles to prefixed authorities", func(t *testing.T) {
		claims := jwtx.Claims{
			RealmAccess:       jwtx.RealmAccess{Roles: []string{"admin", "user"}},
			PreferredUsername: "alice",
			Email:             "alice@example.com",
		}
		claims.Subject = "subject-1"

		svc := &TokenService{Verifier: stubVerifier{claims: claims}}

		principal, err := svc.Validate(ctx, "token")
		require.NoError(t, err)
		require.Equal(t, "subject-1", principal.ID)
		require.Equal(t, "alice", principal.Username)
		require.Equal(t, "alice@example.com", principal.Email)
		require.Equal(t, []string{"ROLE_admin", "ROLE_user"}, principal.Authorities)
	})

	t.Run("role case is preserved", func(t *testing.T) {
		claims := jwtx.Claims{RealmAccess: jwtx.RealmAccess{Roles: []string{"Admin"}}}
		svc := &TokenService{Verifier: stubVerifier{claims: claims}}

		principal, err := svc.Validate(ctx, "token")
		require.NoError(t, err)
		require.Equal(t, []string{"ROLE_Admin"}, principal.Authorities)
	})

	t.Run("no roles yields no authorities", func(t *testing.T) {
		svc := &TokenService{Verifier: stubVerifier{claims: jwtx.Claims{}}}

		principal, err := svc.Validate(ctx, "token")
		require.NoError(t, err)
		require.Empty(t, principal.Authorities)
	})

	t.Run("verification failures collapse into one error", func(t *testing.T) {
		for _, cause := range []error{
			jwtx.ErrMalformed,
			jwtx.ErrInvalidSig,
			jwtx.ErrIssuer,
			jwtx.ErrExpired,
			jwtx.ErrAudience,
		} {
			svc := &TokenService{Verifier: stubVerifier{err: cause}}

			_, err := svc.Validate(ctx, "token")
			require.ErrorIs(t, err, ErrTokenInvalid)
			require.True(t, errors.Is(err, cause), "cause should stay wrapped")
		}
	})
}
