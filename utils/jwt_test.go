package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftbox/draftbox/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken(7, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	_, err = utils.ParseToken(token + "tampered")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken(7, "alice", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseToken(token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestRevokedTokenStaysRevoked(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken(9, "bob", time.Hour)
	require.NoError(t, err)
	assert.False(t, utils.IsTokenRevoked(token))

	utils.RevokeToken(token, time.Now().Add(time.Hour))
	assert.True(t, utils.IsTokenRevoked(token))
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	utils.RevokeToken("already-expired", time.Now().Add(-time.Minute))
	assert.False(t, utils.IsTokenRevoked("already-expired"))
}
