package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RealmAccess is the nested role claim carried by tokens from the identity
// provider: {"realm_access": {"roles": ["admin", ...]}}.
type RealmAccess struct {
	Roles []string `json:"roles,omitempty"`
}

// Claims are the access-token claims this service consumes. Registered
// claims cover issuer/audience/expiry; the rest are provider-specific.
type Claims struct {
	jwt.RegisteredClaims

	// RealmAccess holds the role names granted to the subject. A missing or
	// empty list is valid; it just yields a principal with no authorities.
	RealmAccess RealmAccess `json:"realm_access,omitempty"`

	// PreferredUsername is the human-readable login name, when the provider
	// includes it.
	PreferredUsername string `json:"preferred_username,omitempty"`

	// Email of the subject, when the provider includes it.
	Email string `json:"email,omitempty"`
}

// RealmRoles returns the role names from the nested realm claim. Never nil
// semantics to worry about: an absent claim is an empty list.
func (c *Claims) RealmRoles() []string {
	return c.RealmAccess.Roles
}

// ValidateIssuer checks the iss claim against the configured trusted issuer.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that the aud claim contains the required audience.
func (c *Claims) ValidateAudience(required string) error {
	if required == "" {
		return nil
	}
	if slices.Contains(c.Audience, required) {
		return nil
	}
	return ErrAudience
}

// ValidateWindow checks that now falls inside the token's validity window,
// allowing leeway either side for clock skew. A token without an expiry is
// rejected outright.
func (c *Claims) ValidateWindow(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.IssuedAt != nil && now.Before(c.IssuedAt.Add(-leeway)) {
		return ErrNotYetValid
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
