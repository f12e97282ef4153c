// Package jwtx validates bearer tokens issued by an external identity
// provider. Verification is stateless: every call stands alone, and the only
// thing cached between calls is key material.
package jwtx

import (
	"errors"
	"time"
)

// Verifier validates a raw JWT and returns its claims when the token is
// trustworthy.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions capture what a token must satisfy beyond its signature.
// Checks run in a fixed order: signature, issuer, validity window, audience.
type VerifyOptions struct {
	// Issuer the iss claim must equal exactly. Empty disables the check.
	Issuer string

	// Audience the aud claim list must contain. Empty disables the check.
	Audience string

	// Leeway tolerated either side of the validity window. Clocks drift.
	Leeway time.Duration
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrUnknownKID  = errors.New("jwtx: unknown signing key")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)
