package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Character classes for generated passwords. Punctuation matches the set an
// instructor can reliably type on any keyboard layout the institution uses.
const (
	passwordLetters     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits      = "0123456789"
	passwordPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// GeneratedPasswordLength is the length of auto-generated instructor passwords.
	GeneratedPasswordLength = 10
)

// GenerateUsername derives a username from an email address: the local part
// (text before '@') followed by a random 3-digit number in [100, 999].
func GenerateUsername(email string) (string, error) {
	localPart := email
	if at := strings.Index(email, "@"); at >= 0 {
		localPart = email[:at]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", fmt.Errorf("failed to generate username suffix: %w", err)
	}

	return fmt.Sprintf("%s%d", localPart, 100+n.Int64()), nil
}

// GeneratePassword produces a random password drawn uniformly from upper and
// lower case letters, digits and punctuation. The plaintext is handed to the
// instructor exactly once; only its bcrypt hash is ever persisted.
func GeneratePassword() (string, error) {
	alphabet := passwordLetters + passwordDigits + passwordPunctuation
	result := make([]byte, GeneratedPasswordLength)

	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}

	return string(result), nil
}
