package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuePairRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)

	pair, err := issuer.IssuePair(42)
	require.NoError(t, err)

	access, err := issuer.Verify(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, 42, access.UserID)

	refresh, err := issuer.Verify(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, 42, refresh.UserID)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)

	pair, err := issuer.IssuePair(42)
	require.NoError(t, err)

	_, err = issuer.Verify(pair.Refresh, TokenTypeAccess)
	require.Error(t, err)

	_, err = issuer.Verify(pair.Access, TokenTypeRefresh)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute, time.Hour)

	pair, err := issuer.IssuePair(42)
	require.NoError(t, err)

	_, err = issuer.Verify(pair.Access, TokenTypeAccess)
	require.Error(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	other := NewTokenIssuer("different", time.Minute, time.Hour)

	pair, err := other.IssuePair(42)
	require.NoError(t, err)

	_, err = issuer.Verify(pair.Access, TokenTypeAccess)
	require.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
