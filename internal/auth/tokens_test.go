package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalmarket/core/internal/auth"
)

func TestIssueTokens_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	userID := uuid.New()

	access, refresh, err := issuer.IssueTokens(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	gotFromAccess, err := issuer.Parse(access, "access")
	require.NoError(t, err)
	assert.Equal(t, userID, gotFromAccess)

	gotFromRefresh, err := issuer.Parse(refresh, "refresh")
	require.NoError(t, err)
	assert.Equal(t, userID, gotFromRefresh)
}

func TestParse_RejectsWrongType(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	access, _, err := issuer.IssueTokens(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Parse(access, "refresh")
	assert.Error(t, err)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	access, _, err := issuer.IssueTokens(uuid.New())
	require.NoError(t, err)

	other := auth.NewTokenIssuer("other-secret")
	_, err = other.Parse(access, "access")
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, auth.CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, auth.CheckPassword(hash, "wrong password"))
}
