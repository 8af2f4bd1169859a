package auth

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsername(t *testing.T) {
	for i := 0; i < 50; i++ {
		username, err := GenerateUsername("ana.gomez@sena.edu.co")
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(username, "ana.gomez"), "username %q should keep the email local part", username)

		suffix := strings.TrimPrefix(username, "ana.gomez")
		require.Len(t, suffix, 3)

		n, err := strconv.Atoi(suffix)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100)
		assert.LessOrEqual(t, n, 999)
	}
}

func TestGenerateUsernameWithoutAtSign(t *testing.T) {
	username, err := GenerateUsername("plainname")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(username, "plainname"))
	assert.Len(t, username, len("plainname")+3)
}

func TestGeneratePasswordLengthAndAlphabet(t *testing.T) {
	alphabet := passwordLetters + passwordDigits + passwordPunctuation

	for i := 0; i < 50; i++ {
		password, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, password, GeneratedPasswordLength)

		for _, r := range password {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in generated password", r)
		}
	}
}

func TestGeneratePasswordVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword()
		require.NoError(t, err)
		seen[password] = true
	}
	// 20 identical 10-character random passwords would mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}
