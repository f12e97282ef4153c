// Package cryptox generates the opaque handles that identify server-side
// sessions. Handles carry no embedded semantics; the server stores only a
// fingerprint so a leaked database cannot be replayed as live handles.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Handle size constants (bytes of entropy before encoding).
const (
	// HandleSize128 provides 128 bits of entropy (22 chars base64url).
	HandleSize128 = 16
	// HandleSize256 provides 256 bits of entropy (43 chars base64url).
	// Large enough that concurrent generation cannot realistically collide.
	HandleSize256 = 32
)

// NewHandle creates a cryptographically random opaque handle of the given
// byte length, encoded base64url without padding.
func NewHandle(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: handle size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate handle: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint returns the deterministic SHA-256 fingerprint of a handle,
// base64url encoded. Stores index sessions by fingerprint so the raw handle
// never touches disk.
func Fingerprint(handle string) string {
	sum := sha256.Sum256([]byte(handle))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
