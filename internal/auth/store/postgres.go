package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/db"
)

const uniqueViolation = "23505"

// PostgresRepository stores credential records in the users table.
// Uniqueness rides on the LOWER(email) unique index and token
// consumption is a single conditional UPDATE, so the concurrency
// contract of auth.Repository holds without application-level locking.
type PostgresRepository struct {
	db *db.DB
}

func NewPostgresRepository(db *db.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u *auth.User) (*auth.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, verification_token, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.VerificationToken, u.Role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, auth.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, name, email, password_hash, verified,
		       verification_token, reset_token, reset_token_expires,
		       last_login, role, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) ConsumeVerificationToken(ctx context.Context, token string) (*auth.User, error) {
	query := `
		UPDATE users
		SET verified = true,
		    verification_token = NULL,
		    updated_at = NOW()
		WHERE verification_token = $1
		RETURNING id, name, email, password_hash, verified,
		          verification_token, reset_token, reset_token_expires,
		          last_login, role, created_at, updated_at
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $2,
		    reset_token_expires = $3,
		    updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, token, expires)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) (*auth.User, error) {
	// The expiry filter makes an expired token indistinguishable from
	// an absent one.
	query := `
		UPDATE users
		SET password_hash = $2,
		    reset_token = NULL,
		    reset_token_expires = NULL,
		    updated_at = NOW()
		WHERE reset_token = $1
		  AND reset_token_expires > $3
		RETURNING id, name, email, password_hash, verified,
		          verification_token, reset_token, reset_token_expires,
		          last_login, role, created_at, updated_at
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, token, newHash, now))
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE users
		SET last_login = $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*auth.User, error) {
	var (
		u                 auth.User
		verificationToken sql.NullString
		resetToken        sql.NullString
		resetTokenExpires sql.NullTime
		lastLogin         sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Verified,
		&verificationToken, &resetToken, &resetTokenExpires,
		&lastLogin, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if verificationToken.Valid {
		u.VerificationToken = &verificationToken.String
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	if resetTokenExpires.Valid {
		u.ResetTokenExpires = &resetTokenExpires.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return &u, nil
}
