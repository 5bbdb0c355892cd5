package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// TokenBytes is the default entropy for verification and reset tokens.
// 20 bytes = 160 bits.
const TokenBytes = 20

// NewToken returns a URL-safe encoding of n cryptographically secure
// random bytes. The issuer keeps no state; persisting and invalidating
// the token is the caller's job.
func NewToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("credentials: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewTokenWithExpiry issues a token together with an absolute expiry
// of now + ttl.
func NewTokenWithExpiry(n int, ttl time.Duration) (string, time.Time, error) {
	token, err := NewToken(n)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().Add(ttl), nil
}
