// Package booking implements the booking lifecycle: validation and
// creation of group bookings with their participant sets, participant
// responses, confirmation and cancellation, and the pending-booking
// expiry sweep.  Persistence and event delivery are reached through
// small interfaces so the lifecycle rules stay testable without a
// database or broker.
package booking

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/hoa-court-booking/internal/model"
	"github.com/courtside/hoa-court-booking/internal/permission"
	"github.com/courtside/hoa-court-booking/internal/queue"
)

// PendingTTL is how long a pending booking may wait for confirmation
// before the expiry sweep deletes it.  Fixed, not configurable per call.
const PendingTTL = 30 * time.Minute

// Validation and state errors surfaced to handlers.
var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTimeRange   = errors.New("start time must be before end time")
	ErrNoCourts           = errors.New("at least one court is required")
	ErrInvalidPlayers     = errors.New("total players must be at least min members, which must be at least 1")
	ErrOrganizerInvited   = errors.New("organizer must not appear in the invite list")
	ErrInvalidStatus      = errors.New("invalid participant status")
	ErrNotPending         = errors.New("booking is no longer pending")
	ErrAlreadyResponded   = errors.New("participant has already responded")
	ErrHoursNotChargeable = errors.New("hours cannot be charged before the booking is confirmed")
)

// Store is the persistence boundary for bookings.  The booking row and
// its participant batch are written in one transaction by the
// implementation; the lifecycle rules depend on that atomicity.
type Store interface {
	CreateWithParticipants(ctx context.Context, b *model.Booking, parts []model.BookingParticipant) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, from, to string) error
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
}

// ParticipantStore is the persistence boundary for participant rows.
type ParticipantStore interface {
	GetByID(ctx context.Context, id uint64) (model.BookingParticipant, error)
	UpdateStatus(ctx context.Context, id uint64, status string, hoursCharged *float64) error
	ListByBooking(ctx context.Context, bookingID uint64) ([]model.BookingParticipant, error)
}

// Publisher delivers booking events to the broker.  Delivery is
// best-effort; a failed publish never fails the booking operation.
type Publisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// Service orchestrates the booking lifecycle.
type Service struct {
	store        Store
	participants ParticipantStore
	events       Publisher
	now          func() time.Time
}

// NewService constructs a Service.  events may be nil when no broker is
// configured; publishes are then skipped.
func NewService(store Store, participants ParticipantStore, events Publisher) *Service {
	if store == nil || participants == nil {
		panic("nil store passed to booking.NewService")
	}
	return &Service{
		store:        store,
		participants: participants,
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput carries the caller-supplied fields of a new group booking.
type CreateInput struct {
	StartTime      time.Time
	EndTime        time.Time
	Courts         []int
	TotalPlayers   int
	GuestCount     int
	MinMembers     int
	InvitedUserIDs []uint64
}

// CreateGroupBooking validates the input, derives the prime-time flag
// and expiry timestamp, and persists the booking together with its
// participant batch in one transaction: the organizer as accepted and
// every invitee as invited, all with hours left null.  On success an
// invitation event is published best-effort.
func (s *Service) CreateGroupBooking(ctx context.Context, organizer *model.Profile, hoa *model.HOA, in CreateInput) (model.Booking, error) {
	if !permission.Has(organizer, permission.CreateBookings) {
		return model.Booking{}, ErrForbidden
	}
	if hoa == nil || organizer.HOAID != hoa.ID {
		return model.Booking{}, ErrForbidden
	}
	if !in.StartTime.Before(in.EndTime) {
		return model.Booking{}, ErrInvalidTimeRange
	}
	if len(in.Courts) == 0 {
		return model.Booking{}, ErrNoCourts
	}
	if in.MinMembers < 1 || in.TotalPlayers < in.MinMembers {
		return model.Booking{}, ErrInvalidPlayers
	}
	// The columns are 16-bit unsigned; anything outside that range would
	// silently wrap on conversion below, so reject it here.
	if in.TotalPlayers > math.MaxUint16 || in.MinMembers > math.MaxUint16 ||
		in.GuestCount < 0 || in.GuestCount > math.MaxUint16 {
		return model.Booking{}, ErrInvalidPlayers
	}

	// Deduplicate invitees and reject the organizer appearing in the
	// list; their participant row is created automatically.
	invited := make([]uint64, 0, len(in.InvitedUserIDs))
	seen := make(map[uint64]struct{}, len(in.InvitedUserIDs))
	for _, id := range in.InvitedUserIDs {
		if id == 0 {
			continue
		}
		if id == organizer.UserID {
			return model.Booking{}, ErrOrganizerInvited
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			invited = append(invited, id)
		}
	}

	now := s.now()
	b := model.Booking{
		HOAID:        hoa.ID,
		OrganizerID:  organizer.UserID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Courts:       in.Courts,
		Status:       model.BookingStatusPending,
		TotalPlayers: uint16(in.TotalPlayers),
		GuestCount:   uint16(in.GuestCount),
		MinMembers:   uint16(in.MinMembers),
		IsPrimeTime:  IsPrimeTime(in.StartTime, WindowForHOA(hoa)),
		ExpiresAt:    now.Add(PendingTTL),
		CreatedAt:    now,
	}

	parts := make([]model.BookingParticipant, 0, len(invited)+1)
	parts = append(parts, model.BookingParticipant{
		UserID: organizer.UserID,
		Status: model.ParticipantStatusAccepted,
	})
	for _, id := range invited {
		parts = append(parts, model.BookingParticipant{
			UserID: id,
			Status: model.ParticipantStatusInvited,
		})
	}

	if err := s.store.CreateWithParticipants(ctx, &b, parts); err != nil {
		return model.Booking{}, err
	}

	if len(invited) > 0 {
		s.publish(ctx, queue.EventBookingInvited, &b, organizer, invited)
	}
	return b, nil
}

// RespondToInvitation transitions a participant from invited to
// accepted or declined.  Only the invited user themselves, or an admin
// with manage-all-bookings reach into the booking's HOA, may respond.
// hoursCharged is only accepted once the parent booking is confirmed.
func (s *Service) RespondToInvitation(ctx context.Context, actor *model.Profile, participantID uint64, status string, hoursCharged *float64) error {
	if status != model.ParticipantStatusAccepted && status != model.ParticipantStatusDeclined {
		return ErrInvalidStatus
	}
	p, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	b, err := s.store.GetByID(ctx, p.BookingID)
	if err != nil {
		return err
	}
	if actor == nil {
		return ErrForbidden
	}
	if actor.UserID != p.UserID {
		if !permission.Has(actor, permission.ManageAllBookings) || !permission.CanAccessHOA(actor, b.HOAID) {
			return ErrForbidden
		}
	}
	if p.Status != model.ParticipantStatusInvited {
		return ErrAlreadyResponded
	}
	if hoursCharged != nil && b.Status != model.BookingStatusConfirmed {
		return ErrHoursNotChargeable
	}
	return s.participants.UpdateStatus(ctx, participantID, status, hoursCharged)
}

// Confirm moves a pending booking to confirmed and notifies the
// accepted participants.  Allowed for the organizer and for admins
// holding approve-bookings in the booking's HOA.
func (s *Service) Confirm(ctx context.Context, actor *model.Profile, bookingID uint64) (model.Booking, error) {
	return s.transition(ctx, actor, bookingID, model.BookingStatusConfirmed, permission.ApproveBookings, queue.EventBookingConfirmed)
}

// Cancel moves a pending booking to cancelled.  Allowed for the
// organizer and for admins holding manage-all-bookings in the
// booking's HOA.  Confirmed bookings cannot be cancelled here.
func (s *Service) Cancel(ctx context.Context, actor *model.Profile, bookingID uint64) (model.Booking, error) {
	return s.transition(ctx, actor, bookingID, model.BookingStatusCancelled, permission.ManageAllBookings, queue.EventBookingCancelled)
}

func (s *Service) transition(ctx context.Context, actor *model.Profile, bookingID uint64, to string, adminPerm permission.Permission, eventType string) (model.Booking, error) {
	b, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if actor == nil || !actor.IsActive {
		return model.Booking{}, ErrForbidden
	}
	if actor.UserID != b.OrganizerID {
		if !permission.Has(actor, adminPerm) || !permission.CanAccessHOA(actor, b.HOAID) {
			return model.Booking{}, ErrForbidden
		}
	} else if !permission.Has(actor, permission.ManageOwnBookings) {
		return model.Booking{}, ErrForbidden
	}
	if b.Status != model.BookingStatusPending {
		return model.Booking{}, ErrNotPending
	}
	if err := s.store.UpdateStatus(ctx, b.ID, model.BookingStatusPending, to); err != nil {
		return model.Booking{}, err
	}
	b.Status = to

	recipients := s.acceptedRecipients(ctx, b.ID)
	if len(recipients) > 0 {
		s.publish(ctx, eventType, &b, actor, recipients)
	}
	return b, nil
}

// SweepExpired deletes pending bookings whose expiry has passed and
// returns how many were removed.  Cascade constraints take the
// participant rows with them.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredPending(ctx, s.now())
}

// IsExpired reports whether the booking is eligible for the expiry
// sweep: still pending with an elapsed expiry timestamp.  Confirmed and
// cancelled bookings are never swept regardless of ExpiresAt.
func IsExpired(b *model.Booking, now time.Time) bool {
	return b != nil && b.Status == model.BookingStatusPending && b.ExpiresAt.Before(now)
}

func (s *Service) acceptedRecipients(ctx context.Context, bookingID uint64) []uint64 {
	parts, err := s.participants.ListByBooking(ctx, bookingID)
	if err != nil {
		log.Printf("booking: list participants for event failed: %v", err)
		return nil
	}
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		if p.Status == model.ParticipantStatusAccepted {
			ids = append(ids, p.UserID)
		}
	}
	return ids
}

// publish sends a booking event to the broker.  Failures are logged and
// swallowed: notification delivery must never roll back or fail the
// booking operation that triggered it.
func (s *Service) publish(ctx context.Context, eventType string, b *model.Booking, actor *model.Profile, recipients []uint64) {
	if s.events == nil {
		return
	}
	ev := queue.BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		BookingID:     b.ID,
		HOAID:         b.HOAID,
		OrganizerID:   b.OrganizerID,
		OrganizerName: actor.FullName,
		StartsAt:      b.StartTime.UTC().Format(time.RFC3339),
		EndsAt:        b.EndTime.UTC().Format(time.RFC3339),
		Courts:        b.Courts,
		IsPrimeTime:   b.IsPrimeTime,
		RecipientIDs:  recipients,
		OccurredAt:    s.now().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("booking: publish %s event failed: %v", eventType, err)
	}
}
