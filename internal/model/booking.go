package model

import "time"

// Booking status values.  A booking starts out pending and either gets
// confirmed, cancelled, or deleted by the expiry sweep once its
// expires_at passes.  Confirmed and cancelled are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a group reservation request for one or more courts
// within a single HOA.  The prime-time flag and expiry timestamp are
// derived at creation time and never supplied by the caller.  While the
// booking is pending, ExpiresAt marks when the expiry sweep may delete
// it; once the booking leaves pending the field is meaningless.
//
// Fields:
//  ID           – primary key identifier.
//  HOAID        – the HOA this booking belongs to.
//  OrganizerID  – user who created the booking.  Must belong to HOAID.
//  StartTime    – start of the reserved slot.
//  EndTime      – end of the reserved slot (after StartTime).
//  Courts       – court numbers reserved (non-empty).
//  Status       – lifecycle status (pending, confirmed, cancelled).
//  TotalPlayers – total player count including guests.
//  GuestCount   – how many of the players are guests.
//  MinMembers   – minimum member acceptances required.
//  IsPrimeTime  – whether StartTime falls in the HOA's prime window.
//  ExpiresAt    – creation time + 30 minutes; pending bookings past
//                 this instant are eligible for deletion.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Booking struct {
	ID           uint64    // bookings.id
	HOAID        uint64    // bookings.hoa_id
	OrganizerID  uint64    // bookings.organizer_id
	StartTime    time.Time // bookings.start_time
	EndTime      time.Time // bookings.end_time
	Courts       []int     // bookings.courts (JSON column)
	Status       string    // bookings.status
	TotalPlayers uint16    // bookings.total_players
	GuestCount   uint16    // bookings.guest_count
	MinMembers   uint16    // bookings.min_members
	IsPrimeTime  bool      // bookings.is_prime_time
	ExpiresAt    time.Time // bookings.expires_at
	CreatedAt    time.Time // bookings.created_at
	UpdatedAt    time.Time // bookings.updated_at
}
