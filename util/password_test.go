package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("doctor")
	assert.NoError(t, err)
	h2, err := HashPassword("doctor")
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ by salt")
	assert.NotContains(t, string(h1), "doctor")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("doctor")
	assert.NoError(t, err)

	ok, err := VerifyPassword("doctor", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("doctor", []byte("not-a-bcrypt-hash"))
	assert.Error(t, err)
	assert.False(t, ok)
}
