package domain

import "time"

// Session binds an opaque handle to a principal snapshot on the server side.
// The client only ever holds the raw handle; we store its fingerprint.
//
// The snapshot is taken at login: disabling or locking the account later
// does not retroactively end the session. Accepted trade-off — per-request
// re-checks would put the credential store on every request path.
type Session struct {
	Fingerprint string // SHA-256 of the raw handle, base64url
	Principal   Principal
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session's idle deadline has passed.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
