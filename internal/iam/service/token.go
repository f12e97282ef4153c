package service

import (
	"context"
	"fmt"

	"github.com/alae/iam/internal/iam/domain"
	"github.com/alae/iam/pkg/jwtx"
	"github.com/alae/iam/pkg/slogx"
)

// TokenService maps validated bearer tokens to principals. It is completely
// stateless: no per-token storage, nothing to revoke, two instances agree
// on any token without talking to each other.
type TokenService struct {
	Verifier jwtx.Verifier
}

// Validate verifies a raw token and builds the principal it represents.
// Every realm role becomes an authority with the role prefix applied; role
// names keep their original case. All verification failures collapse into
// ErrTokenInvalid, with the underlying reason wrapped for logs.
func (t *TokenService) Validate(ctx context.Context, raw string) (domain.Principal, error) {
	claims, err := t.Verifier.Verify(raw)
	if err != nil {
		slogx.FromContext(ctx).Debug("token rejected", "reason", err.Error())
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	roles := claims.RealmRoles()
	authorities := make([]string, 0, len(roles))
	for _, role := range roles {
		authorities = append(authorities, domain.RoleAuthority(role))
	}

	return domain.Principal{
		ID:          claims.Subject,
		Username:    claims.PreferredUsername,
		Email:       claims.Email,
		Authorities: authorities,
	}, nil
}
