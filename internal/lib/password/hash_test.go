package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/password"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := password.GetHash("tajne-haslo")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "tajne-haslo", hash)

	assert.NoError(t, password.CompareHash(hash, "tajne-haslo"))
	assert.Error(t, password.CompareHash(hash, "zle-haslo"))
}

func TestGetHash_Salted(t *testing.T) {
	first, err := password.GetHash("tajne-haslo")
	require.NoError(t, err)
	second, err := password.GetHash("tajne-haslo")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
