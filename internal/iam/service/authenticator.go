package service

import (
	"context"
	"errors"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/internal/iam/store"
	"github.com/alae/iam/pkg/passx"
	"github.com/alae/iam/pkg/slogx"
)

// Authenticator verifies user credentials and gates on account state. Every
// verification attempt maps to exactly one domain.Outcome; the error return
// is reserved for infrastructure failures such as an unreachable store.
type Authenticator struct {
	Store  store.Store
	Hasher passx.Hasher
}

// Authenticate resolves the identifier (username first, then email; exact
// match) and runs the decision chain: account disabled, then locked, then
// the password comparison. Locked and disabled win over the password check
// so a legitimate owner learns why login fails; unknown identifiers and
// wrong passwords collapse into one outcome so outsiders learn nothing.
func (a *Authenticator) Authenticate(ctx context.Context, identifier, password string) (domain.Outcome, error) {
	log := slogx.FromContext(ctx)

	user, err := a.lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so misses take about as long
			// as a wrong password for a real account.
			a.Hasher.DummyVerify(password)
			log.Info("authentication failed", "outcome", domain.OutcomeInvalidCredentials.String())
			return domain.FailureOutcome(domain.OutcomeInvalidCredentials), nil
		}
		return domain.Outcome{}, err
	}

	if !user.Enabled {
		log.Info("authentication failed", "outcome", domain.OutcomeAccountDisabled.String(), "user_id", user.ID)
		return domain.FailureOutcome(domain.OutcomeAccountDisabled), nil
	}

	if user.Locked {
		log.Info("authentication failed", "outcome", domain.OutcomeAccountLocked.String(), "user_id", user.ID)
		return domain.FailureOutcome(domain.OutcomeAccountLocked), nil
	}

	if !a.Hasher.Verify(password, user.PasswordHash) {
		log.Info("authentication failed", "outcome", domain.OutcomeInvalidCredentials.String(), "user_id", user.ID)
		return domain.FailureOutcome(domain.OutcomeInvalidCredentials), nil
	}

	return domain.SuccessOutcome(domain.Principal{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Authorities: domain.DefaultAuthorities(),
	}), nil
}

// lookup tries username first, then email. First hit wins.
func (a *Authenticator) lookup(ctx context.Context, identifier string) (domain.User, error) {
	user, err := a.Store.Users().GetUserByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	return a.Store.Users().GetUserByEmail(ctx, identifier)
}
