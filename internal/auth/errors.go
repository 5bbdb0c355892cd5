package auth

import "errors"

var (
	// ErrDuplicateEmail is returned by signup when the email is taken.
	ErrDuplicateEmail = errors.New("user already exists with this email")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotVerified is returned by login before email verification.
	ErrNotVerified = errors.New("email not verified")

	// ErrInvalidToken covers a verification or reset token that is
	// missing, already consumed, or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrNotFound is returned by lookups when no record matches.
	ErrNotFound = errors.New("user not found")
)
