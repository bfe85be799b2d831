package model

// Participant status values.  The organizer is inserted as accepted;
// every invitee starts invited and moves to accepted or declined.
const (
	ParticipantStatusInvited  = "invited"
	ParticipantStatusAccepted = "accepted"
	ParticipantStatusDeclined = "declined"
)

// BookingParticipant links one invited player to a booking.  The
// organizer's row is created automatically alongside the booking with
// status accepted.  HoursCharged stays null until the parent booking is
// confirmed and quota hours are resolved.
//
// Fields:
//  ID           – primary key identifier.
//  BookingID    – the booking this participation belongs to.
//  UserID       – the invited user.
//  Status       – invitation status (invited, accepted, declined).
//  HoursCharged – quota hours charged once the booking is confirmed
//                 (null until then).
type BookingParticipant struct {
	ID           uint64   // booking_participants.id
	BookingID    uint64   // booking_participants.booking_id
	UserID       uint64   // booking_participants.user_id
	Status       string   // booking_participants.status
	HoursCharged *float64 // booking_participants.hours_charged (nullable)
}
