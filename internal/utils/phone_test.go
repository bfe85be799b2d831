package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{
		"5551234567",
		"(555) 123-4567",
		"555-123-4567",
		"555.123.4567",
		"15551234567",
		"+1 555 123 4567",
		"+15551234567",
	}
	for _, p := range valid {
		assert.True(t, IsValidPhoneNumber(p), "expected %q to be valid", p)
	}

	invalid := []string{
		"",
		"555123",
		"555123456789",
		"+445551234567",
		"phone me",
		"555-123-456a",
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhoneNumber(p), "expected %q to be invalid", p)
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	assert.Equal(t, "+15551234567", NormalizePhoneNumber("5551234567"))
	assert.Equal(t, "+15551234567", NormalizePhoneNumber("(555) 123-4567"))
	assert.Equal(t, "+15551234567", NormalizePhoneNumber("15551234567"))
	assert.Equal(t, "+15551234567", NormalizePhoneNumber("+1 555 123 4567"))
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "(555) 123-4567", FormatPhoneNumber("+15551234567"))
	assert.Equal(t, "(555) 123-4567", FormatPhoneNumber("5551234567"))
	assert.Equal(t, "(555) 123-4567", FormatPhoneNumber("15551234567"))
	// Unformattable input comes back unchanged.
	assert.Equal(t, "12345", FormatPhoneNumber("12345"))
}
