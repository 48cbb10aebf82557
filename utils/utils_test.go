package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Ana Maria", CleanName("  Ana   Maria "))
	assert.Equal(t, "", CleanName(" \t "))
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("padel")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("padel", hash))
	assert.False(t, CheckPasswordHash("Padel", hash))
	assert.False(t, CheckPasswordHash("padel", "not-a-hash"))
}
