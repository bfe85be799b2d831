package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("test-valley"))
	assert.True(t, IsValidSlug("oak-ridge-2"))
	assert.False(t, IsValidSlug("ab"))
	assert.False(t, IsValidSlug("Test-Valley"))
	assert.False(t, IsValidSlug("test valley"))
	assert.False(t, IsValidSlug(strings.Repeat("a", 51)))
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "test-valley", GenerateSlug("Test Valley"))
	assert.Equal(t, "oak-ridge-hoa", GenerateSlug("  Oak   Ridge HOA  "))
	assert.Equal(t, "sunny-acres", GenerateSlug("Sunny Acres!"))
	assert.Equal(t, "a-b", GenerateSlug("A --- B"))
	assert.Equal(t, "", GenerateSlug("!!!"))
}

func TestGenerateInvitationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateInvitationCode()
		require.NoError(t, err)
		assert.Len(t, code, InvitationCodeLength)
		for _, r := range code {
			assert.Contains(t, invitationAlphabet, string(r))
		}
		seen[code] = true
	}
	// 50 draws from a 36^8 space colliding would point at a broken RNG.
	assert.Greater(t, len(seen), 45)
}
