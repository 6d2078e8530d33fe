package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSecretVerifier_Matches(t *testing.T) {
	v, err := NewSecretVerifier("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, v.Matches("correct horse battery staple"))
	assert.False(t, v.Matches("correct horse battery"))
	assert.False(t, v.Matches(""))
}

func TestSecretVerifier_LongSecret(t *testing.T) {
	long := strings.Repeat("a", 100)
	v, err := NewSecretVerifier(long, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, v.Matches(long))
	// differs only past bcrypt's 72-byte window
	assert.False(t, v.Matches(strings.Repeat("a", 99)+"b"))
}
