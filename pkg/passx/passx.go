// Package passx hashes and verifies user passwords with bcrypt. The encoded
// digest is self-describing: it embeds the algorithm version, cost factor and
// per-password salt, so stored digests survive cost changes.
package passx

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the work factor applied when none is configured.
	// 2^12 rounds, matching what the production deployments run.
	DefaultCost = 12

	// MinCost below this bcrypt silently upgrades to its own floor, so we
	// reject it outright to avoid surprising effective costs.
	MinCost = bcrypt.MinCost
)

// Hasher produces and checks bcrypt digests at a fixed cost factor.
// The zero value is not usable; construct with New.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given cost factor. Costs outside bcrypt's
// supported range fall back to DefaultCost.
func New(cost int) Hasher {
	if cost < MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash generates a salted digest of raw. Two calls with the same input
// return different digests because the salt is random per call.
func (h Hasher) Hash(raw string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("passx: hash: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether raw matches the stored digest. Malformed digests
// verify as false rather than erroring; the caller treats both the same way.
func (h Hasher) Verify(raw, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(raw)) == nil
}

// dummyDigest is a valid bcrypt digest of an unguessable throwaway value,
// pre-computed so DummyVerify burns comparable CPU to a real mismatch.
const dummyDigest = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// DummyVerify performs a bcrypt comparison that always fails. Called for
// unknown identifiers so lookup misses take about as long as a wrong
// password for an existing account. Best-effort timing equalisation, not a
// constant-time guarantee.
func (h Hasher) DummyVerify(raw string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(raw))
}
