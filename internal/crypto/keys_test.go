package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSaltBase64(t *testing.T) {
	salt, err := GenerateSaltBase64()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(salt)
	require.NoError(t, err)
	assert.Len(t, raw, SaltSize)

	other, err := GenerateSaltBase64()
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestDeriveStoreKey(t *testing.T) {
	salt, err := GenerateSaltBase64()
	require.NoError(t, err)

	key, err := DeriveStoreKey("correct horse", salt)
	require.NoError(t, err)
	assert.Len(t, key, KeySize)

	// Детерминированность
	again, err := DeriveStoreKey("correct horse", salt)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	other, err := DeriveStoreKey("battery staple", salt)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveStoreKey_Errors(t *testing.T) {
	salt, err := GenerateSaltBase64()
	require.NoError(t, err)

	_, err = DeriveStoreKey("", salt)
	assert.ErrorContains(t, err, "passphrase cannot be empty")

	_, err = DeriveStoreKey("pass", "%%%")
	assert.ErrorContains(t, err, "failed to decode salt")

	_, err = DeriveStoreKey("pass", base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorContains(t, err, "salt must be 16 bytes")
}
