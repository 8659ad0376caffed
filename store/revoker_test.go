package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRevoker(t *testing.T) (*TokenRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenRevoker(client), mr
}

func TestTokenRevoker(t *testing.T) {
	r, mr := newTestRevoker(t)

	revoked, err := r.IsRevoked("some-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke("some-token", time.Hour))

	revoked, err = r.IsRevoked("some-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	// The entry dies with the token's own expiry.
	mr.FastForward(2 * time.Hour)
	revoked, err = r.IsRevoked("some-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenRevokerIgnoresExpiredTokens(t *testing.T) {
	r, _ := newTestRevoker(t)

	// Revoking an already expired token is a no-op.
	require.NoError(t, r.Revoke("stale", -time.Minute))

	revoked, err := r.IsRevoked("stale")
	require.NoError(t, err)
	assert.False(t, revoked)
}
