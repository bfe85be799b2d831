package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

// invitationAlphabet deliberately excludes lowercase so codes survive
// being read over the phone or off a flyer.
const invitationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InvitationCodeLength is the fixed length of HOA invitation codes.
const InvitationCodeLength = 8

// IsValidSlug reports whether s is an acceptable HOA slug: lowercase
// letters, digits and hyphens, 3 to 50 characters.
func IsValidSlug(s string) bool {
	if len(s) < 3 || len(s) > 50 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// GenerateSlug derives a slug from an HOA name: lowercased, special
// characters dropped, whitespace runs collapsed to single hyphens,
// leading and trailing hyphens trimmed.
func GenerateSlug(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// GenerateInvitationCode returns a random 8-character uppercase
// alphanumeric code.  Uniqueness is enforced by the database; callers
// retry on conflict.
func GenerateInvitationCode() (string, error) {
	buf := make([]byte, InvitationCodeLength)
	max := big.NewInt(int64(len(invitationAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = invitationAlphabet[n.Int64()]
	}
	return string(buf), nil
}
