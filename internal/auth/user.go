package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/dyayaten/cybersahali/internal/session"
)

// User is a credential record as stored by the repository.
//
// VerificationToken is present only while the account is unverified.
// ResetToken and ResetTokenExpires are present together while a password
// reset is pending; an expired pair is treated the same as an absent one.
type User struct {
	ID                uuid.UUID
	Name              string
	Email             string
	PasswordHash      string
	Verified          bool
	VerificationToken *string
	ResetToken        *string
	ResetTokenExpires *time.Time
	LastLogin         *time.Time
	Role              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Projection returns the minimal view of the user carried by a session.
// The password hash and token state never leave the auth boundary.
func (u *User) Projection() session.User {
	return session.User{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
