package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "asha@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "asha@example.com", claims.Email)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "asha@example.com", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	require.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not-a-token", "secret")
	require.Error(t, err)
}
