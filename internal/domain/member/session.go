package member

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// SessionTTL is how long an exchanged session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// Session is an authenticated browser session, created by exchanging a
// one-time session id with the identity provider. The token is carried in
// an http-only cookie with a Bearer header fallback.
type Session struct {
	Token     string
	UserID    shared.UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewSession issues a session for the member. If the identity provider
// supplied its own token, it is used as-is; otherwise a random one is minted.
func NewSession(userID shared.UserID, token string) *Session {
	if token == "" {
		token = NewSessionToken()
	}
	now := timeutil.Now()
	return &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
}

// NewSessionToken mints a random 32-byte hex token.
func NewSessionToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(timeutil.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(buf)
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
