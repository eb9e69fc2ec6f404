package auth_test

import (
	"testing"

	"shipping/internal/adapters/out/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4) // low cost keeps the test fast

	t.Run("should match the hashed password", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret-pass")

		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", hash)
		assert.True(t, hasher.Compare(hash, "s3cret-pass"))
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret-pass")

		require.NoError(t, err)
		assert.False(t, hasher.Compare(hash, "wrong-pass"))
	})

	t.Run("should reject a malformed hash", func(t *testing.T) {
		assert.False(t, hasher.Compare("not-a-hash", "s3cret-pass"))
	})

	t.Run("should produce distinct hashes for the same password", func(t *testing.T) {
		first, err := hasher.Hash("s3cret-pass")
		require.NoError(t, err)
		second, err := hasher.Hash("s3cret-pass")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
