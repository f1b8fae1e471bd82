package domain

import "errors"

// Sentinel errors shared across services and repositories. The API layer maps
// each to a deterministic HTTP status; anything else collapses to a 500.
var (
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrEmailTaken         = errors.New("email already registered")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
)
