package model

import "time"

// HOA represents a homeowners association: the organizational boundary
// that owns courts, member profiles and bookings.  Slug and invitation
// code are globally unique; an inactive HOA accepts no new
// registrations.  HOAs are created and mutated only by super admins and
// are never deleted in normal operation.  This struct corresponds to a
// row in the `hoas` table.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – display name of the association.
//  Slug              – globally unique URL-safe identifier.
//  InvitationCode    – globally unique code allowing self-registration.
//  IsActive          – whether the HOA accepts registrations and bookings.
//  CourtCount        – number of courts the HOA operates.
//  CourtNames        – optional display names for the courts.
//  DefaultPrimeHours – prime-time hour quota granted to new profiles.
//  DefaultStdHours   – standard hour quota granted to new profiles.
//  WeekdayPrimeStart – weekday prime window start hour (0-23).
//  WeekdayPrimeEnd   – weekday prime window end hour (exclusive).
//  WeekendPrimeStart – weekend prime window start hour (0-23).
//  WeekendPrimeEnd   – weekend prime window end hour (exclusive).
//  BookingWindowDays – how many days ahead a booking may be placed.
//  MaxAdvanceDays    – hard limit on advance bookings per member.
//  AllowGuests       – whether members may bring guests to bookings.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type HOA struct {
	ID                uint64    // hoas.id
	Name              string    // hoas.name
	Slug              string    // hoas.slug
	InvitationCode    string    // hoas.invitation_code
	IsActive          bool      // hoas.is_active
	CourtCount        uint8     // hoas.court_count
	CourtNames        []string  // hoas.court_names (JSON column)
	DefaultPrimeHours uint32    // hoas.default_prime_hours
	DefaultStdHours   uint32    // hoas.default_standard_hours
	WeekdayPrimeStart uint8     // hoas.weekday_prime_start
	WeekdayPrimeEnd   uint8     // hoas.weekday_prime_end
	WeekendPrimeStart uint8     // hoas.weekend_prime_start
	WeekendPrimeEnd   uint8     // hoas.weekend_prime_end
	BookingWindowDays uint8     // hoas.booking_window_days
	MaxAdvanceDays    uint8     // hoas.max_advance_days
	AllowGuests       bool      // hoas.allow_guests
	CreatedAt         time.Time // hoas.created_at
	UpdatedAt         time.Time // hoas.updated_at
}
