// Package memory provides a process-local Sessions driver. Suited to tests
// and single-process demo deployments; sqlite is the shared driver.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/internal/iam/store"
)

// Sessions is a mutex-guarded map keyed by handle fingerprint. All mutations
// happen under the lock, so a completed DeleteSession is observed by every
// later GetSessionByFingerprint.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

var _ store.Sessions = (*Sessions)(nil)

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]domain.Session)}
}

func (m *Sessions) CreateSession(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.Fingerprint]; ok {
		return store.ErrAlreadyExists
	}
	m.sessions[s.Fingerprint] = s
	return nil
}

func (m *Sessions) GetSessionByFingerprint(_ context.Context, fingerprint string) (domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[fingerprint]
	if !ok {
		return domain.Session{}, store.ErrNotFound
	}
	return s, nil
}

func (m *Sessions) ExtendSession(_ context.Context, fingerprint string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[fingerprint]
	if !ok {
		return store.ErrNotFound
	}
	s.ExpiresAt = expiresAt
	m.sessions[fingerprint] = s
	return nil
}

func (m *Sessions) DeleteSession(_ context.Context, fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, fingerprint)
	return nil
}

func (m *Sessions) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for fp, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, fp)
			removed++
		}
	}
	return removed, nil
}
