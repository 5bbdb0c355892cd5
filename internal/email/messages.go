package email

import (
	"fmt"
	"net/url"
)

// VerificationMessage builds the mail carrying the account
// verification link.
func VerificationMessage(baseURL, to, token string) Message {
	link := fmt.Sprintf("%s/verify-email?token=%s", baseURL, url.QueryEscape(token))

	return Message{
		To:      to,
		Subject: "Verify Your Email",
		HTML: fmt.Sprintf(`
        <h1>Welcome to Cybersahali</h1>
        <p>Please click the link below to verify your email address:</p>
        <a href="%s">Verify Email</a>
      `, link),
	}
}

// ResetMessage builds the mail carrying the password reset link.
func ResetMessage(baseURL, to, token string) Message {
	link := fmt.Sprintf("%s/reset-password?token=%s", baseURL, url.QueryEscape(token))

	return Message{
		To:      to,
		Subject: "Password Reset",
		HTML: fmt.Sprintf(`
        <h1>Password Reset</h1>
        <p>You requested a password reset. Please click the link below to reset your password:</p>
        <a href="%s">Reset Password</a>
        <p>This link will expire in 1 hour.</p>
      `, link),
	}
}
