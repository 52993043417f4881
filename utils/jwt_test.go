package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/thinknotes-be/types"
)

func TestUserTokenRoundTrip(t *testing.T) {
	user := &types.User{
		ID:       "abc123",
		Username: "student",
		FullName: "Student One",
		Role:     types.USER_ROLE_USER,
	}

	token, err := GenerateUserToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseUserToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.FullName, claims.FullName)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestParseUserTokenRejectsGarbage(t *testing.T) {
	_, err := ParseUserToken("not.a.token")
	assert.Error(t, err)
}

func TestParseUserTokenRejectsTampering(t *testing.T) {
	token, err := GenerateUserToken(&types.User{ID: "x", Username: "u", Role: types.USER_ROLE_USER})
	require.NoError(t, err)

	_, err = ParseUserToken(token + "tampered")
	assert.Error(t, err)
}
