package service

import (
	"context"
	"errors"
	"time"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/internal/iam/store"
	"github.com/alae/iam/pkg/cryptox"
	"github.com/alae/iam/pkg/slogx"
)

// DefaultSessionTTL is the idle deadline applied when none is configured.
const DefaultSessionTTL = 30 * time.Minute

// SessionService issues, resolves and ends server-side sessions. The raw
// handle is returned exactly once, at Begin; afterwards the store only
// knows its fingerprint.
type SessionService struct {
	Sessions store.Sessions
	TTL      time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewSessionService wires a session service over the given repository.
func NewSessionService(sessions store.Sessions, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		Sessions: sessions,
		TTL:      ttl,
		now:      time.Now,
	}
}

// Begin creates a session for the principal and returns the raw handle the
// client will present on later requests.
func (s *SessionService) Begin(ctx context.Context, principal domain.Principal) (string, error) {
	handle, err := cryptox.NewHandle(cryptox.HandleSize256)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	session := domain.Session{
		Fingerprint: cryptox.Fingerprint(handle),
		Principal:   principal,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.TTL),
	}

	if err := s.Sessions.CreateSession(ctx, session); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Debug("session started", "user_id", principal.ID)
	return handle, nil
}

// Resolve maps a raw handle back to its principal. Missing, ended and
// expired handles all resolve to ErrNotAuthenticated; a live session has
// its idle deadline pushed forward.
func (s *SessionService) Resolve(ctx context.Context, handle string) (domain.Principal, error) {
	if handle == "" {
		return domain.Principal{}, ErrNotAuthenticated
	}

	fingerprint := cryptox.Fingerprint(handle)

	session, err := s.Sessions.GetSessionByFingerprint(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrNotAuthenticated
		}
		return domain.Principal{}, err
	}

	now := s.now().UTC()
	if session.Expired(now) {
		// Lazy reaping; the housekeeping worker sweeps the rest.
		_ = s.Sessions.DeleteSession(ctx, fingerprint)
		return domain.Principal{}, ErrNotAuthenticated
	}

	// Sliding expiry. An extend racing a delete can fail with not found;
	// the session was ended, so report it as such.
	if err := s.Sessions.ExtendSession(ctx, fingerprint, now.Add(s.TTL)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrNotAuthenticated
		}
		return domain.Principal{}, err
	}

	return session.Principal, nil
}

// End terminates the session for the given handle. Ending an unknown or
// already-ended handle is a no-op, so End is safe to retry.
func (s *SessionService) End(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	return s.Sessions.DeleteSession(ctx, cryptox.Fingerprint(handle))
}
