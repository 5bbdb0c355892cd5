package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dyayaten/cybersahali/internal/auth/credentials"
	"github.com/dyayaten/cybersahali/internal/email"
	"github.com/dyayaten/cybersahali/internal/logger"
	"github.com/dyayaten/cybersahali/internal/session"
)

const (
	defaultRole     = "user"
	dispatchTimeout = 10 * time.Second
)

// Service owns the credential state machine: signup, email
// verification, login/logout, and the password-recovery flow.
type Service struct {
	repo       Repository
	sessions   session.Store
	mailer     email.Sender
	baseURL    string
	resetTTL   time.Duration
	sessionTTL time.Duration

	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service time source. Tests use it to place
// token-expiry checks on either side of the boundary.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	repo Repository,
	sessions session.Store,
	mailer email.Sender,
	baseURL string,
	resetTTL time.Duration,
	sessionTTL time.Duration,
	opts ...Option,
) *Service {
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		mailer:     mailer,
		baseURL:    baseURL,
		resetTTL:   resetTTL,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Signup registers a new unverified account and dispatches the
// verification mail. The mail is sent only after the record is
// persisted; a delivery failure degrades to a warning and never rolls
// the record back.
func (s *Service) Signup(ctx context.Context, name, emailAddr, password string) error {
	hash, err := credentials.HashPassword(password)
	if err != nil {
		return err
	}

	token, err := credentials.NewToken(credentials.TokenBytes)
	if err != nil {
		return err
	}

	user := &User{
		Name:              name,
		Email:             emailAddr,
		PasswordHash:      hash,
		VerificationToken: &token,
		Role:              defaultRole,
	}

	if _, err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	s.dispatch(email.VerificationMessage(s.baseURL, emailAddr, token))

	return nil
}

// VerifyEmail consumes a verification token. A token that was already
// used verifies nothing a second time.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	_, err := s.repo.ConsumeVerificationToken(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return ErrInvalidToken
	}
	return err
}

// Login checks the password against the stored hash and, on success,
// records the login time and mints a session carrying the user
// projection. An unknown email and a wrong password are not
// distinguished.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*session.Session, error) {
	user, err := s.repo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Verified {
		return nil, ErrNotVerified
	}

	if err := credentials.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()

	if err := s.repo.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		return nil, err
	}

	sess := session.Session{
		SessionID: sessionID,
		User:      user.Projection(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Logout destroys the session. A missing or already-destroyed session
// is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// ForgotPassword issues a time-boxed reset token and mails the reset
// link. Issuing a new token overwrites any pending one, so only the
// most recently issued token is ever valid. An unknown email reports
// ErrNotFound.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.repo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	token, err := credentials.NewToken(credentials.TokenBytes)
	if err != nil {
		return err
	}
	expires := s.now().Add(s.resetTTL)

	if err := s.repo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	s.dispatch(email.ResetMessage(s.baseURL, user.Email, token))

	return nil
}

// ResetPassword consumes an unexpired reset token and replaces the
// password hash. It does not log the user in.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := credentials.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if token == "" {
		return ErrInvalidToken
	}

	_, err = s.repo.ConsumeResetToken(ctx, token, hash, s.now())
	if errors.Is(err, ErrNotFound) {
		return ErrInvalidToken
	}
	return err
}

// dispatch sends the mail off the request path. The credential state is
// already committed when this runs; a failure is a degraded success.
func (s *Service) dispatch(msg email.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := s.mailer.Send(ctx, msg); err != nil {
			logger.Warn("email dispatch failed", map[string]any{
				"to":      msg.To,
				"subject": msg.Subject,
				"error":   err.Error(),
			})
		}
	}()
}
