package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistent store of credential records. Uniqueness
// and token consumption are the store's responsibility: Create must be
// a single conditional insert, and the Consume operations must be a
// single compare-and-clear, so concurrent callers racing on the same
// email or token resolve to exactly one winner.
type Repository interface {
	// Create persists a new record. ErrDuplicateEmail when the email
	// is already registered (case-insensitive).
	Create(ctx context.Context, u *User) (*User, error)

	// FindByEmail returns ErrNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ConsumeVerificationToken atomically marks the matching record
	// verified and clears its token. ErrNotFound when the token is
	// unknown or already consumed.
	ConsumeVerificationToken(ctx context.Context, token string) (*User, error)

	// SetResetToken stores a pending reset, overwriting any prior one.
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error

	// ConsumeResetToken atomically replaces the password hash and
	// clears the reset state of the record holding an unexpired token.
	// ErrNotFound when the token is unknown, consumed, or expired.
	ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) (*User, error)

	// RecordLogin updates the last-login timestamp.
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
