package authz

import (
	"testing"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := &domain.Principal{
		ID:          "01HZXW3N9T1B2C3D4E5F6G7H8J",
		Username:    "alice",
		Authorities: []string{"ROLE_USER", "ROLE_admin"},
	}

	t.Run("holder of the authority passes", func(t *testing.T) {
		require.NoError(t, Authorize(admin, "ROLE_admin"))
		require.NoError(t, Authorize(admin, "ROLE_USER"))
	})

	t.Run("missing authority", func(t *testing.T) {
		require.ErrorIs(t, Authorize(admin, "ROLE_auditor"), ErrInsufficientPrivilege)
	})

	t.Run("match is case sensitive", func(t *testing.T) {
		require.ErrorIs(t, Authorize(admin, "ROLE_ADMIN"), ErrInsufficientPrivilege)
		require.ErrorIs(t, Authorize(admin, "role_admin"), ErrInsufficientPrivilege)
	})

	t.Run("nil principal fails before the authority check", func(t *testing.T) {
		require.ErrorIs(t, Authorize(nil, "ROLE_admin"), ErrNotAuthenticated)
		require.ErrorIs(t, Authorize(nil, ""), ErrNotAuthenticated)
	})

	t.Run("principal with no authorities", func(t *testing.T) {
		bare := &domain.Principal{ID: "01HZXW3N9T1B2C3D4E5F6G7H8K"}
		require.ErrorIs(t, Authorize(bare, "ROLE_USER"), ErrInsufficientPrivilege)
	})
}
