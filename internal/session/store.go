package session

import (
	"context"
	"time"
)

// User is the minimal projection of a credential record carried by a
// session. It intentionally excludes the password hash and token state.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session represents an authenticated user session.
type Session struct {
	SessionID string    // unique session identifier
	User      User      // projection captured at login time
	CreatedAt time.Time // when the session was minted
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Implementations (e.g., Redis) must remain stateless and opaque.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
