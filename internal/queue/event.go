// Package queue defines message payloads exchanged over the message broker.
package queue

// EventQueueName is the durable queue all booking events flow through.
const EventQueueName = "booking.events"

// Booking event types.
const (
	EventBookingInvited   = "booking.invited"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking is created, confirmed or
// cancelled.  It carries enough information for the notification worker
// to build and deliver per-recipient messages without querying the
// primary database.  RecipientIDs lists the users to notify: the
// invitee set for an invitation event, every accepted participant for
// confirmation and cancellation.
type BookingEvent struct {
	EventID       string   `json:"event_id"`
	Type          string   `json:"type"`
	BookingID     uint64   `json:"booking_id"`
	HOAID         uint64   `json:"hoa_id"`
	OrganizerID   uint64   `json:"organizer_id"`
	OrganizerName string   `json:"organizer_name"`
	StartsAt      string   `json:"starts_at"`
	EndsAt        string   `json:"ends_at"`
	Courts        []int    `json:"courts"`
	IsPrimeTime   bool     `json:"is_prime_time"`
	RecipientIDs  []uint64 `json:"recipient_ids"`
	OccurredAt    string   `json:"occurred_at"`
}
