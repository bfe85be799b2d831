package model

import "time"

// Profile represents a person's membership in exactly one HOA.  A user
// has at most one profile per HOA, carrying their role, quota counters
// and contact phone number.  Phone numbers are unique within an HOA
// (the same number may register in a different HOA).  Profiles are
// soft-deactivated, never physically deleted.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – login identity this profile belongs to.
//  HOAID         – the HOA this membership is scoped to.
//  FullName      – display name of the member.
//  PhoneNumber   – normalized phone number (+1XXXXXXXXXX).
//  Role          – role name (member, hoa_admin, super_admin).
//  IsActive      – whether the membership is active.
//  PrimeHours    – remaining prime-time hour quota.
//  StandardHours – remaining standard hour quota.
//  LastReset     – when the quota counters were last reset.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Profile struct {
	ID            uint64    // profiles.id
	UserID        uint64    // profiles.user_id
	HOAID         uint64    // profiles.hoa_id
	FullName      string    // profiles.full_name
	PhoneNumber   string    // profiles.phone_number
	Role          string    // profiles.role
	IsActive      bool      // profiles.is_active
	PrimeHours    uint32    // profiles.prime_hours
	StandardHours uint32    // profiles.standard_hours
	LastReset     time.Time // profiles.last_reset
	CreatedAt     time.Time // profiles.created_at
	UpdatedAt     time.Time // profiles.updated_at
}
