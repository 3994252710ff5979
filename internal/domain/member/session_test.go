package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func TestNewSessionMintsToken(t *testing.T) {
	session := NewSession(shared.UserID("user_abc"), "")

	assert.NotEmpty(t, session.Token)
	assert.Len(t, session.Token, 64) // 32 bytes hex-encoded
	assert.Equal(t, shared.UserID("user_abc"), session.UserID)
	assert.Equal(t, SessionTTL, session.ExpiresAt.Sub(session.CreatedAt))
}

func TestNewSessionKeepsProviderToken(t *testing.T) {
	session := NewSession(shared.UserID("user_abc"), "provider-token")
	assert.Equal(t, "provider-token", session.Token)
}

func TestSessionTokensAreUnique(t *testing.T) {
	a := NewSession(shared.UserID("user_a"), "")
	b := NewSession(shared.UserID("user_a"), "")
	assert.NotEqual(t, a.Token, b.Token)
}

func TestSessionIsExpired(t *testing.T) {
	session := NewSession(shared.UserID("user_abc"), "")

	assert.False(t, session.IsExpired(session.CreatedAt))
	assert.False(t, session.IsExpired(session.ExpiresAt.Add(-time.Second)))
	assert.True(t, session.IsExpired(session.ExpiresAt))
	assert.True(t, session.IsExpired(session.ExpiresAt.Add(time.Hour)))
}
