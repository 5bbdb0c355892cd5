package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooShort is returned before any hashing work is done.
var ErrPasswordTooShort = errors.New("password too short")

const minPasswordLength = 8

// HashPassword hashes a plaintext password using bcrypt. The salt is
// generated per call and embedded in the result, so two calls with the
// same input produce different hashes.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// VerifyPassword compares a plaintext password with a stored hash.
// A malformed hash reports as a mismatch, not a distinct failure.
func VerifyPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
}
