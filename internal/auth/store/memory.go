package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dyayaten/cybersahali/internal/auth"
)

// MemoryRepository keeps credential records in process memory. It is
// used in tests and for running the service without Postgres; it
// honors the same atomicity contract as the Postgres implementation by
// holding a single mutex across each check-and-write.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[uuid.UUID]*auth.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, u *auth.User) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, auth.ErrDuplicateEmail
		}
	}

	stored := *u
	stored.ID = uuid.New()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored

	out := stored
	*u = out
	return &out, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *MemoryRepository) ConsumeVerificationToken(ctx context.Context, token string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			u.Verified = true
			u.VerificationToken = nil
			u.UpdatedAt = time.Now()
			out := *u
			return &out, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *MemoryRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return auth.ErrNotFound
	}

	t := token
	e := expires
	u.ResetToken = &t
	u.ResetTokenExpires = &e
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ResetToken == nil || *u.ResetToken != token {
			continue
		}
		if u.ResetTokenExpires == nil || !u.ResetTokenExpires.After(now) {
			// expired tokens look absent
			continue
		}
		u.PasswordHash = newHash
		u.ResetToken = nil
		u.ResetTokenExpires = nil
		u.UpdatedAt = time.Now()
		out := *u
		return &out, nil
	}
	return nil, auth.ErrNotFound
}

func (r *MemoryRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return auth.ErrNotFound
	}

	t := at
	u.LastLogin = &t
	u.UpdatedAt = time.Now()
	return nil
}
