package domain

import "slices"

// RolePrefix namespaces role names when they become authorities, e.g. role
// "admin" grants authority "ROLE_admin".
const RolePrefix = "ROLE_"

// AuthorityUser is the authority every account holds from registration.
// There is no per-user role storage; every account gets this fixed set.
const AuthorityUser = RolePrefix + "USER"

// Principal is the immutable identity produced by a successful
// authentication. It never carries the raw secret or the stored digest.
type Principal struct {
	ID          string
	Username    string
	Email       string
	Authorities []string
}

// HasAuthority reports whether the principal holds the named authority.
// Exact string match; no wildcards, no hierarchy.
func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

// RoleAuthority maps a bare role name to its authority form.
func RoleAuthority(role string) string {
	return RolePrefix + role
}

// DefaultAuthorities returns a fresh copy of the registration-time authority
// set. Copied so callers cannot mutate a shared slice.
func DefaultAuthorities() []string {
	return []string{AuthorityUser}
}
