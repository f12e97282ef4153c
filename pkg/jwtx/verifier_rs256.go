package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RS256Verifier validates RS256-signed tokens against key material supplied
// by a jwt.Keyfunc (a static KeySet or a remote JWKS source).
type RS256Verifier struct {
	keyfunc jwt.Keyfunc
	opts    VerifyOptions

	// now is swappable for tests.
	now func() time.Time
}

// NewRS256 builds a verifier over the given key source.
func NewRS256(keyfunc jwt.Keyfunc, opts VerifyOptions) *RS256Verifier {
	return &RS256Verifier{
		keyfunc: keyfunc,
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Verify parses and validates the token. Claim checks run after the
// signature check, in order: issuer, validity window, audience; the first
// failure wins.
func (v *RS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		// Claim checks run below in a defined order; the parser only owns
		// the signature.
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, v.keyfunc)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateWindow(v.now(), v.opts.Leeway); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// Keyfunc failures land here, typically an unknown kid.
		return fmt.Errorf("%w: %w", ErrUnknownKID, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}
}
