package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	tok, exp, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Same(t, m, DefaultJWT())
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	refresh, _, err := m.GenerateRefreshToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)

	tok, _, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestMalformedTokenRejected(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)
	_, err := m.ParseAccessToken("not.a.jwt")
	assert.Error(t, err)
}
