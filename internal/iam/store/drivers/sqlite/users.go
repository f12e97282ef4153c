package sqlite

import (
	"context"
	"database/sql"

	"github.com/alae/iam/internal/iam/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, username, email, password_hash, enabled, locked, created_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, enabled, locked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Enabled, u.Locked, toMillis(u.CreatedAt))
	return mapConflict(err)
}

func (r *usersRepo) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	return r.setFlag(ctx, `UPDATE users SET enabled = ? WHERE id = ?`, enabled, userID)
}

func (r *usersRepo) SetLocked(ctx context.Context, userID string, locked bool) error {
	return r.setFlag(ctx, `UPDATE users SET locked = ? WHERE id = ?`, locked, userID)
}

func (r *usersRepo) setFlag(ctx context.Context, query string, value bool, userID string) error {
	res, err := r.db.ExecContext(ctx, query, value, userID)
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

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		createdAt int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Enabled, &u.Locked, &createdAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}
