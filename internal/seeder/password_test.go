package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash := HashPassword("password", []byte("salt"))

	assert.Len(t, hash, 128)
	assert.Equal(t, hash, HashPassword("password", []byte("salt")))
	assert.NotEqual(t, hash, HashPassword("password", []byte("pepper")))
	assert.NotEqual(t, hash, HashPassword("secret", []byte("salt")))
}

func TestNewSalt(t *testing.T) {
	assert.NotEqual(t, newSalt(), newSalt())
	assert.Len(t, newSalt(), 36)
}
