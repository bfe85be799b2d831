package utils

import "strings"

// Phone helpers.  Profiles store US numbers normalized to +1XXXXXXXXXX
// so the per-HOA uniqueness constraint compares like with like
// regardless of how the member typed the number.

// IsValidPhoneNumber reports whether the input is a plausible US phone
// number.  Accepted shapes after stripping formatting: 10 digits,
// 1 + 10 digits, or +1 + 10 digits.
func IsValidPhoneNumber(phone string) bool {
	cleaned := stripPhone(phone)
	switch {
	case len(cleaned) == 10:
		return allDigits(cleaned)
	case len(cleaned) == 11 && cleaned[0] == '1':
		return allDigits(cleaned)
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, "+1"):
		return allDigits(cleaned[1:])
	}
	return false
}

// NormalizePhoneNumber converts any accepted input shape to the storage
// form +1XXXXXXXXXX.  Inputs that fail validation are returned cleaned
// but otherwise untouched; callers validate first.
func NormalizePhoneNumber(phone string) string {
	cleaned := stripPhone(phone)
	switch {
	case len(cleaned) == 10:
		return "+1" + cleaned
	case len(cleaned) == 11 && cleaned[0] == '1':
		return "+" + cleaned
	}
	return cleaned
}

// FormatPhoneNumber renders a stored number for display as
// (555) 123-4567, dropping the +1 country code.
func FormatPhoneNumber(phone string) string {
	digits := strings.Map(keepDigit, phone)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return phone
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

// stripPhone removes every formatting character, keeping digits and a
// leading plus sign.
func stripPhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
