package store

import (
	"context"
	"errors"
	"time"

	"github.com/alae/iam/internal/iam/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// deployments, memory for the session shelf in tests) implement the
// sub-repositories they support.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername does a case-sensitive exact lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail does a case-sensitive exact lookup.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id assigned by the app via ULID).
	// Returns ErrAlreadyExists on a username or email conflict.
	CreateUser(ctx context.Context, u domain.User) error

	// SetEnabled flips the enabled flag.
	SetEnabled(ctx context.Context, userID string, enabled bool) error

	// SetLocked flips the locked flag.
	SetLocked(ctx context.Context, userID string, locked bool) error
}

type Sessions interface {
	// CreateSession stores a new session row keyed by handle fingerprint.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByFingerprint returns the session, expired or not; the
	// caller decides what an expired row means.
	GetSessionByFingerprint(ctx context.Context, fingerprint string) (domain.Session, error)

	// ExtendSession moves the idle deadline forward. Missing rows return
	// ErrNotFound.
	ExtendSession(ctx context.Context, fingerprint string, expiresAt time.Time) error

	// DeleteSession removes the session. Deleting a missing row is a no-op.
	DeleteSession(ctx context.Context, fingerprint string) error

	// DeleteExpiredSessions is housekeeping; returns rows removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
