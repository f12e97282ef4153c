package jwtx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RemoteKeysConfig tunes the background refresh of a remote JWKS endpoint.
type RemoteKeysConfig struct {
	// URL of the issuer's JWKS document.
	URL string

	// RefreshInterval between scheduled fetches. Defaults to 1h.
	RefreshInterval time.Duration

	// RefreshTimeout per fetch. Defaults to 10s.
	RefreshTimeout time.Duration
}

// RemoteKeys fetches the issuer's published key material and keeps it fresh:
// on a schedule, and immediately when a token presents a kid we do not hold.
// The returned close function stops the background refresh.
//
// The initial fetch is synchronous so a misconfigured URL fails at startup
// rather than on the first request.
func RemoteKeys(ctx context.Context, cfg RemoteKeysConfig) (jwt.Keyfunc, func(), error) {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Hour
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 10 * time.Second
	}

	jwks, err := keyfunc.Get(cfg.URL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   cfg.RefreshInterval,
		RefreshTimeout:    cfg.RefreshTimeout,
		RefreshRateLimit:  time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			slog.Warn("jwks refresh failed", "url", cfg.URL, "err", err)
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("jwtx: fetch jwks from %s: %w", cfg.URL, err)
	}

	return jwks.Keyfunc, jwks.EndBackground, nil
}
