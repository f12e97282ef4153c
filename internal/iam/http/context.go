package http

import (
	"context"

	"github.com/alae/iam/internal/iam/domain"
)

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// withPrincipal stores the resolved principal on the request context.
func withPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// principalFrom returns the principal established by an auth middleware, or
// nil when the request is anonymous.
func principalFrom(ctx context.Context) *domain.Principal {
	if p, ok := ctx.Value(ctxKeyPrincipal).(domain.Principal); ok {
		return &p
	}
	return nil
}
