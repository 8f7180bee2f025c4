package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := GeneratePassword("hunter2")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := ValidatePassword("hunter2", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidatePassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	a, err := GeneratePassword("hunter2")
	require.NoError(t, err)
	b, err := GeneratePassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidatePasswordMalformedHash(t *testing.T) {
	_, err := ValidatePassword("hunter2", "not-a-hash")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateJWTToken(&User{Id: 1, Name: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", token.Name)
	require.NotEmpty(t, token.AccessToken)

	claims, err := ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
