// Package authz answers one question: may this principal perform an action
// guarded by a given authority? It never authenticates; callers resolve the
// principal first via a session or token carrier.
package authz

import (
	"errors"

	"github.com/alae/iam/internal/iam/domain"
)

var (
	// ErrNotAuthenticated means no principal was established at all. The
	// caller should challenge for credentials.
	ErrNotAuthenticated = errors.New("authz: not authenticated")

	// ErrInsufficientPrivilege means the caller is known but lacks the
	// required authority. Re-authenticating will not help.
	ErrInsufficientPrivilege = errors.New("authz: insufficient privilege")
)

// Authorize checks that a principal holds the required authority. The match
// is exact: byte-for-byte string equality, no wildcards, no hierarchy, so
// "ROLE_admin" never satisfies a gate requiring "ROLE_ADMIN".
//
// A nil principal always fails with ErrNotAuthenticated, and that check
// runs first: anonymous callers learn that authentication is required, not
// whether the gate's authority exists.
func Authorize(principal *domain.Principal, required string) error {
	if principal == nil {
		return ErrNotAuthenticated
	}
	if !principal.HasAuthority(required) {
		return ErrInsufficientPrivilege
	}
	return nil
}
