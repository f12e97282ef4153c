package service

import "errors"

var (
	// ErrNotAuthenticated is the single answer for any handle that does not
	// resolve: missing, expired, or already ended.
	ErrNotAuthenticated = errors.New("not_authenticated")

	// ErrTokenInvalid collapses every token validation failure into one
	// outward-facing value; the underlying sub-reason stays wrapped for logs.
	ErrTokenInvalid = errors.New("invalid_token")

	// Registration conflicts. Username and email are checked independently
	// so the caller can say which one is taken.
	ErrUsernameTaken = errors.New("username_taken")
	ErrEmailTaken    = errors.New("email_taken")
)
