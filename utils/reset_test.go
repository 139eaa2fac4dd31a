package authUtils

import (
	"testing"
	"time"

	"communityfix-be/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	config.RedisClient = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { config.RedisClient = nil })
	return srv
}

func TestResetTokenConsumedOnce(t *testing.T) {
	setupRedis(t)

	token, err := CreateResetToken("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok, err := ConsumeResetToken(token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	// A consumed token cannot be replayed.
	_, ok, err = ConsumeResetToken(token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetTokenExpires(t *testing.T) {
	srv := setupRedis(t)

	token, err := CreateResetToken("user-1")
	require.NoError(t, err)

	srv.FastForward(2 * time.Hour)

	_, ok, err := ConsumeResetToken(token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsumeUnknownResetToken(t *testing.T) {
	setupRedis(t)

	_, ok, err := ConsumeResetToken("never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenIssuedBeforeResetStamp(t *testing.T) {
	setupRedis(t)

	issuedBefore := time.Now().Add(-time.Minute).Unix()
	require.NoError(t, StampPasswordReset("user-1"))

	assert.True(t, TokenIssuedBeforeReset("user-1", issuedBefore),
		"tokens minted before the reset must be rejected")
	assert.False(t, TokenIssuedBeforeReset("user-1", time.Now().Add(time.Minute).Unix()),
		"tokens minted after the reset remain valid")
	assert.False(t, TokenIssuedBeforeReset("user-2", issuedBefore),
		"other users are unaffected")
}
