package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestSignAndParseRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token, err := SignAccessToken(42, "alice", testSecret, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, now.Add(AccessTTL), claims.ExpiresAt.Time, time.Second)
}

func TestTokenValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()

	// issued almost an hour ago, still inside the window
	token, err := SignAccessToken(1, "alice", testSecret, time.Now().Add(-AccessTTL+time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, "alice", testSecret, time.Now().Add(-2*AccessTTL))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, testSecret)
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, "alice", testSecret, time.Now())
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	t.Parallel()

	_, err := AccessClaimsFromToken("not.a.token", testSecret)
	require.Error(t, err)
}
