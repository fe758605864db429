package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseToken(t *testing.T) {
	token, expireAt, err := SignToken("secret", time.Minute, "ops")
	require.NoError(t, err)
	assert.True(t, expireAt.After(time.Now()))

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Username)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := SignToken("secret", time.Minute, "ops")
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenExpired(t *testing.T) {
	token, _, err := SignToken("secret", time.Nanosecond, "ops")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = ParseToken(token, "secret")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestSignTokenValidatesInput(t *testing.T) {
	_, _, err := SignToken("", time.Minute, "ops")
	require.Error(t, err)
	_, _, err = SignToken("secret", 0, "ops")
	require.Error(t, err)
}
