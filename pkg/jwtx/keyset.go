package jwtx

import (
	"errors"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds RSA public verification keys in memory, indexed by kid.
// Safe for concurrent use. Suited to deployments where the issuer's keys are
// provisioned out of band, and to tests; production setups usually prefer
// RemoteKeys.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]any
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]any)}
}

// Add registers a public key under the given kid, replacing any previous key.
func (k *KeySet) Add(kid string, pub any) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[kid] = pub
}

// Keyfunc resolves the signing key for a parsed token header. Tokens without
// a kid, or with a kid we do not hold, are rejected.
func (k *KeySet) Keyfunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("jwtx: missing kid header")
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	if pub, ok := k.pub[kid]; ok {
		return pub, nil
	}
	return nil, ErrNoKey
}
