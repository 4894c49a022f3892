package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Correct-Horse1")
	require.NoError(t, err)
	require.Contains(t, hash, ":")

	assert.True(t, VerifyPassword("Correct-Horse1", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("SamePassword1")
	require.NoError(t, err)
	h2, err := HashPassword("SamePassword1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("SamePassword1", h1))
	assert.True(t, VerifyPassword("SamePassword1", h2))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	cases := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"no separator", "justonesegment"},
		{"bad salt base64", "!!!:aGFzaA"},
		{"bad hash base64", "c2FsdA:!!!"},
		{"empty hash", "c2FsdA:"},
		{"empty salt", ":aGFzaA"},
		{"extra separator", strings.Repeat(":", 5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("any-password", tc.encoded))
		})
	}
}
