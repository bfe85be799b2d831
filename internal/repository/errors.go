// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers such
// as handlers to distinguish failure scenarios: ErrNotFound becomes an
// HTTP 404, the conflict sentinels become 409 with a message naming the
// duplicated field, and ErrForbidden becomes 403.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// Uniqueness-violation sentinels.  Each maps a MySQL duplicate-key
// error on a specific unique index to a caller-distinguishable value.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrPhoneExists    = errors.New("phone number already registered in this HOA")
	ErrSlugExists     = errors.New("slug already exists")
	ErrInviteCodeDupe = errors.New("invitation code already exists")
)

// isDuplicate reports whether err is a MySQL duplicate-key error
// (errno 1062), optionally on the named unique index.
func isDuplicate(err error, index string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "1062") && !strings.Contains(strings.ToLower(msg), "duplicate entry") {
		return false
	}
	return index == "" || strings.Contains(msg, index)
}
