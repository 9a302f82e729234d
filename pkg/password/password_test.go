package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	plaintext := "Sup3r-Secret!"

	hash, err := Hash(plaintext)
	require.NoError(t, err)

	// Hash asla plaintext'i içermez
	assert.NotEqual(t, plaintext, hash)
	assert.False(t, strings.Contains(hash, plaintext))
	assert.True(t, strings.HasPrefix(hash, "$2"), "bcrypt hash formatı bekleniyor")

	ok, err := Verify(plaintext, hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyWrongPassword(t *testing.T) {
	hash, err := Hash("Correct-Passw0rd!")
	require.NoError(t, err)

	// Yanlış şifre error değil, (false, nil) döner
	ok, err := Verify("Wrong-Passw0rd!", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	ok, err := Verify("whatever", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	// Aynı şifre iki kez hash'lenirse farklı string üretir (embedded salt)
	h1, err := Hash("Same-Passw0rd!")
	require.NoError(t, err)
	h2, err := Hash("Same-Passw0rd!")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
