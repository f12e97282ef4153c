package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHandle(t *testing.T) {
	t.Parallel()

	t.Run("produces url-safe handles of the right length", func(t *testing.T) {
		h, err := NewHandle(HandleSize256)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(h)
		require.NoError(t, err)
		require.Len(t, raw, HandleSize256)
	})

	t.Run("never repeats", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 1000; i++ {
			h, err := NewHandle(HandleSize128)
			require.NoError(t, err)
			_, dup := seen[h]
			require.False(t, dup)
			seen[h] = struct{}{}
		}
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := NewHandle(0)
		require.Error(t, err)
		_, err = NewHandle(-1)
		require.Error(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint("handle-a")
	b := Fingerprint("handle-b")

	require.NotEqual(t, a, b)
	require.Equal(t, a, Fingerprint("handle-a"), "fingerprint must be deterministic")
	require.Len(t, a, 43) // base64url of 32 bytes, no padding
}
