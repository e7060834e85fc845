package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("pw1234")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pw1234", hash)

	assert.True(t, hasher.Verify("pw1234", hash))
	assert.False(t, hasher.Verify("pw1235", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestPasswordHasherSaltsHashes(t *testing.T) {
	hasher := NewPasswordHasher()

	hash1, err := hasher.Hash("samepassword")
	require.NoError(t, err)
	hash2, err := hasher.Hash("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, hasher.Verify("samepassword", hash1))
	assert.True(t, hasher.Verify("samepassword", hash2))
}

func TestPasswordHasherMalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher()

	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		assert.False(t, hasher.Verify("pw1234", digest))
	}
}
