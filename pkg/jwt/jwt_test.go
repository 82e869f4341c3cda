package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret")
	sid := NewSessionID()

	token, err := m.GenerateSessionToken(sid, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, sid, claims.SessionID())
	assert.Equal(t, "admin", claims.Username)
}

func TestManager_Rejects(t *testing.T) {
	m := NewManager("secret")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewManager("other").GenerateSessionToken("sid", "admin", time.Now().Add(time.Hour))
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := m.GenerateSessionToken("sid", "admin", time.Now().Add(-time.Minute))
		require.NoError(t, err)
		claims, err := m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
		require.NotNil(t, claims)
		assert.Equal(t, "sid", claims.SessionID())
	})

	t.Run("expired with wrong secret yields no claims", func(t *testing.T) {
		token, err := NewManager("other").GenerateSessionToken("sid", "admin", time.Now().Add(-time.Minute))
		require.NoError(t, err)
		claims, err := m.ValidateToken(token)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrTokenExpired)
		assert.Nil(t, claims)
	})

	t.Run("missing session id", func(t *testing.T) {
		token, err := m.GenerateSessionToken("", "admin", time.Now().Add(time.Hour))
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestManager_WithClock(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager("secret").WithClock(func() time.Time { return now })

	token, err := m.GenerateSessionToken("sid", "admin", now.Add(time.Hour))
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
