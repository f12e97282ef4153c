package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateWindow(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("token without expiry is rejected", func(t *testing.T) {
		c := &Claims{}
		require.ErrorIs(t, c.ValidateWindow(now, 0), ErrInvalidClaim)
	})

	t.Run("nbf is honoured", func(t *testing.T) {
		c := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		require.ErrorIs(t, c.ValidateWindow(now, 0), ErrNotYetValid)
		require.NoError(t, c.ValidateWindow(now, 2*time.Minute))
	})
}

func TestValidateIssuerAndAudience(t *testing.T) {
	t.Parallel()

	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:   "https://idp.example.com",
		Audience: jwt.ClaimStrings{"svc-a", "svc-b"},
	}}

	require.NoError(t, c.ValidateIssuer("https://idp.example.com"))
	require.ErrorIs(t, c.ValidateIssuer("https://idp.example.com/"), ErrIssuer)
	require.NoError(t, c.ValidateIssuer(""), "empty expectation disables the check")

	require.NoError(t, c.ValidateAudience("svc-b"))
	require.ErrorIs(t, c.ValidateAudience("svc-c"), ErrAudience)
	require.NoError(t, c.ValidateAudience(""))
}
