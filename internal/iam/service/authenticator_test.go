package service

import (
	"context"
	"testing"
	"time"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/internal/iam/store"
	"github.com/alae/iam/internal/iam/store/drivers/sqlite"
	"github.com/alae/iam/pkg/idx"
	"github.com/alae/iam/pkg/passx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, hasher passx.Hasher, username, email, password string, enabled, locked bool) domain.User {
	t.Helper()

	digest, err := hasher.Hash(password)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Enabled:      enabled,
		Locked:       locked,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	hasher := passx.New(passx.MinCost)
	auth := &Authenticator{Store: st, Hasher: hasher}

	active := seedUser(t, st, hasher, "alice", "alice@example.com", "correct horse", true, false)
	seedUser(t, st, hasher, "bob", "bob@example.com", "hunter2", false, false)
	seedUser(t, st, hasher, "carol", "carol@example.com", "letmein", true, true)
	seedUser(t, st, hasher, "dave", "dave@example.com", "swordfish", false, true)

	t.Run("success by username", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "alice", "correct horse")
		require.NoError(t, err)
		require.True(t, outcome.Succeeded())
		require.Equal(t, active.ID, outcome.Principal.ID)
		require.Equal(t, "alice", outcome.Principal.Username)
		require.Equal(t, "alice@example.com", outcome.Principal.Email)
		require.Equal(t, []string{domain.AuthorityUser}, outcome.Principal.Authorities)
	})

	t.Run("success by email", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "alice@example.com", "correct horse")
		require.NoError(t, err)
		require.True(t, outcome.Succeeded())
		require.Equal(t, active.ID, outcome.Principal.ID)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "nobody", "whatever")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeInvalidCredentials, outcome.Kind)
	})

	t.Run("wrong password", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "alice", "wrong")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeInvalidCredentials, outcome.Kind)
	})

	t.Run("disabled account beats correct password", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "bob", "hunter2")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeAccountDisabled, outcome.Kind)
	})

	t.Run("locked account beats correct password", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "carol", "letmein")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeAccountLocked, outcome.Kind)
	})

	t.Run("disabled wins over locked", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "dave", "swordfish")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeAccountDisabled, outcome.Kind)
	})

	t.Run("wrong password on locked account still reports locked", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "carol", "not the password")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeAccountLocked, outcome.Kind)
	})

	t.Run("failure outcomes carry no principal", func(t *testing.T) {
		outcome, err := auth.Authenticate(ctx, "alice", "wrong")
		require.NoError(t, err)
		require.Empty(t, outcome.Principal.ID)
		require.Empty(t, outcome.Principal.Authorities)
	})
}

func TestAuthenticateIsCaseSensitive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	hasher := passx.New(passx.MinCost)
	auth := &Authenticator{Store: st, Hasher: hasher}

	seedUser(t, st, hasher, "Frank", "frank@example.com", "pw", true, false)

	outcome, err := auth.Authenticate(ctx, "frank", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeInvalidCredentials, outcome.Kind)
}
