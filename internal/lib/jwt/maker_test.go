package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/jwt"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("uid-123", "jan@example.com", "przedsiebiorca")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.UserUID)
	assert.Equal(t, "jan@example.com", claims.Email)
	assert.Equal(t, "przedsiebiorca", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	other := jwt.NewJWTMaker("other-secret", time.Hour)

	token, err := maker.GenerateToken("uid-123", "jan@example.com", "mieszkaniec")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken("uid-123", "jan@example.com", "mieszkaniec")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
