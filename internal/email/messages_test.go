package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationMessage(t *testing.T) {
	msg := VerificationMessage("https://cybersahali.example", "ada@x.com", "tok/en+value")

	assert.Equal(t, "ada@x.com", msg.To)
	assert.Equal(t, "Verify Your Email", msg.Subject)
	assert.Contains(t, msg.HTML, "https://cybersahali.example/verify-email?token=tok%2Fen%2Bvalue")
	assert.Contains(t, msg.HTML, "Welcome to Cybersahali")
}

func TestResetMessage(t *testing.T) {
	msg := ResetMessage("https://cybersahali.example", "ada@x.com", "reset-token")

	assert.Equal(t, "ada@x.com", msg.To)
	assert.Equal(t, "Password Reset", msg.Subject)
	assert.Contains(t, msg.HTML, "https://cybersahali.example/reset-password?token=reset-token")
	assert.Contains(t, msg.HTML, "expire in 1 hour")
}
