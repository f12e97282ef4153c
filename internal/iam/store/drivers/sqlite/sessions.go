package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/alae/iam/internal/iam/domain"
)

type sessionsRepo struct {
	db *sql.DB
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (fingerprint, user_id, username, email, authorities, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Fingerprint,
		s.Principal.ID,
		s.Principal.Username,
		s.Principal.Email,
		strings.Join(s.Principal.Authorities, " "),
		toMillis(s.CreatedAt),
		toMillis(s.ExpiresAt),
	)
	return mapConflict(err)
}

func (r *sessionsRepo) GetSessionByFingerprint(ctx context.Context, fingerprint string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT fingerprint, user_id, username, email, authorities, created_at, expires_at
		 FROM sessions WHERE fingerprint = ?`, fingerprint)

	var (
		s           domain.Session
		authorities string
		createdAt   int64
		expiresAt   int64
	)
	err := row.Scan(&s.Fingerprint, &s.Principal.ID, &s.Principal.Username,
		&s.Principal.Email, &authorities, &createdAt, &expiresAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	if authorities != "" {
		s.Principal.Authorities = strings.Split(authorities, " ")
	}
	s.CreatedAt = fromMillis(createdAt)
	s.ExpiresAt = fromMillis(expiresAt)
	return s, nil
}

func (r *sessionsRepo) ExtendSession(ctx context.Context, fingerprint string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET expires_at = ? WHERE fingerprint = ?`,
		toMillis(expiresAt), fingerprint)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, fingerprint string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE fingerprint = ?`, fingerprint)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
