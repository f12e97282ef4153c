package service

import (
	"context"
	"errors"
	"time"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/internal/iam/store"
	"github.com/alae/iam/pkg/idx"
	"github.com/alae/iam/pkg/passx"
)

// Registrar creates new accounts. New users start enabled, unlocked, and
// hold the default authority set.
type Registrar struct {
	Store  store.Store
	Hasher passx.Hasher
}

// Register creates a user after checking username and email independently,
// so callers can report which of the two is taken. The insert still races
// against concurrent registrations; the store's unique constraints are the
// backstop and surface as ErrUsernameTaken for either column.
func (r *Registrar) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	if _, err := r.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	if _, err := r.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	digest, err := r.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Enabled:      true,
		Locked:       false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	return user, nil
}
