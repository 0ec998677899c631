package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// tokenSize is the number of random bytes behind every session token (256 bits).
const tokenSize = 32

// Session binds an opaque token to an authenticated identity.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	Identity  string    `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"` // zero means the session never expires
}

// NewSession creates a session for identity. A ttl of zero disables expiry.
func NewSession(token, identity string, now time.Time, ttl time.Duration) *Session {
	s := &Session{
		ID:        uuid.New(),
		Token:     token,
		Identity:  identity,
		CreatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}

// IsExpired reports whether the session has an expiry that lies before now.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// GenerateToken returns a URL-safe token carrying 256 bits from crypto/rand.
func GenerateToken() (string, error) {
	b := make([]byte, tokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
