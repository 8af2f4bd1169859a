package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cr3t!#9X")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cr3t!#9X", hash)

	assert.True(t, CheckPassword(hash, "s3cr3t!#9X"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestCheckPasswordAgainstGarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}
