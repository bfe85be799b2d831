package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/hoa-court-booking/internal/model"
	"github.com/courtside/hoa-court-booking/internal/queue"
)

var errNotFound = errors.New("not found")

// fakeStore keeps bookings and participants in memory and records the
// participant batches handed to CreateWithParticipants.
type fakeStore struct {
	nextID       uint64
	bookings     map[uint64]model.Booking
	participants map[uint64]model.BookingParticipant
	createErr    error
	deleted      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:       1,
		bookings:     make(map[uint64]model.Booking),
		participants: make(map[uint64]model.BookingParticipant),
	}
}

func (f *fakeStore) CreateWithParticipants(_ context.Context, b *model.Booking, parts []model.BookingParticipant) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = f.nextID
	f.nextID++
	f.bookings[b.ID] = *b
	for i := range parts {
		parts[i].ID = f.nextID
		parts[i].BookingID = b.ID
		f.participants[parts[i].ID] = parts[i]
		f.nextID++
	}
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return model.Booking{}, errNotFound
	}
	return b, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uint64, from, to string) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return errNotFound
	}
	b.Status = to
	f.bookings[id] = b
	return nil
}

func (f *fakeStore) DeleteExpiredPending(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, b := range f.bookings {
		if b.Status == model.BookingStatusPending && b.ExpiresAt.Before(cutoff) {
			delete(f.bookings, id)
			n++
		}
	}
	f.deleted = n
	return n, nil
}

func (f *fakeStore) GetParticipantByID(_ context.Context, id uint64) (model.BookingParticipant, error) {
	p, ok := f.participants[id]
	if !ok {
		return model.BookingParticipant{}, errNotFound
	}
	return p, nil
}

// participantView adapts fakeStore to the ParticipantStore interface.
type participantView struct{ s *fakeStore }

func (v participantView) GetByID(ctx context.Context, id uint64) (model.BookingParticipant, error) {
	return v.s.GetParticipantByID(ctx, id)
}

func (v participantView) UpdateStatus(_ context.Context, id uint64, status string, hours *float64) error {
	p, ok := v.s.participants[id]
	if !ok {
		return errNotFound
	}
	p.Status = status
	p.HoursCharged = hours
	v.s.participants[id] = p
	return nil
}

func (v participantView) ListByBooking(_ context.Context, bookingID uint64) ([]model.BookingParticipant, error) {
	var out []model.BookingParticipant
	for _, p := range v.s.participants {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

type capturingPublisher struct {
	events []queue.BookingEvent
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, ev queue.BookingEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func organizer() *model.Profile {
	return &model.Profile{ID: 1, UserID: 10, HOAID: 1, FullName: "Pat Organizer", Role: "member", IsActive: true}
}

func testHOA() *model.HOA {
	return &model.HOA{ID: 1, Name: "Test Valley", Slug: "test-valley", IsActive: true, CourtCount: 4}
}

func fixedService(store *fakeStore, pub Publisher, now time.Time) *Service {
	svc := NewService(store, participantView{store}, pub)
	svc.now = func() time.Time { return now }
	return svc
}

func validInput() CreateInput {
	return CreateInput{
		StartTime:      time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC), // Saturday 10:00
		EndTime:        time.Date(2025, 6, 7, 11, 0, 0, 0, time.UTC),
		Courts:         []int{1, 2},
		TotalPlayers:   4,
		GuestCount:     1,
		MinMembers:     2,
		InvitedUserIDs: []uint64{11, 12, 13},
	}
}

func TestCreateGroupBooking_ParticipantBatch(t *testing.T) {
	store := newFakeStore()
	pub := &capturingPublisher{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := fixedService(store, pub, now)

	b, err := svc.CreateGroupBooking(context.Background(), organizer(), testHOA(), validInput())
	require.NoError(t, err)

	// 3 invitees produce exactly 4 participant rows.
	require.Len(t, store.participants, 4)
	accepted, invited := 0, 0
	for _, p := range store.participants {
		assert.Equal(t, b.ID, p.BookingID)
		assert.Nil(t, p.HoursCharged, "hours must be null until confirmation")
		switch p.Status {
		case model.ParticipantStatusAccepted:
			accepted++
			assert.Equal(t, uint64(10), p.UserID, "only the organizer starts accepted")
		case model.ParticipantStatusInvited:
			invited++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 3, invited)
}

func TestCreateGroupBooking_DerivedFields(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := fixedService(store, nil, now)

	b, err := svc.CreateGroupBooking(context.Background(), organizer(), testHOA(), validInput())
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, b.Status)
	assert.True(t, b.IsPrimeTime, "Saturday 10:00 is weekend prime time")
	assert.Equal(t, now.Add(30*time.Minute), b.ExpiresAt, "expiry is exactly creation + 30 minutes")

	// Tuesday 10:00 is outside the weekday evening window.
	in := validInput()
	in.StartTime = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	in.EndTime = in.StartTime.Add(time.Hour)
	b2, err := svc.CreateGroupBooking(context.Background(), organizer(), testHOA(), in)
	require.NoError(t, err)
	assert.False(t, b2.IsPrimeTime)
}

func TestCreateGroupBooking_Validation(t *testing.T) {
	store := newFakeStore()
	svc := fixedService(store, nil, time.Now().UTC())
	ctx := context.Background()

	in := validInput()
	in.EndTime = in.StartTime
	_, err := svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	in = validInput()
	in.Courts = nil
	_, err = svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrNoCourts)

	in = validInput()
	in.MinMembers = 0
	_, err = svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	in = validInput()
	in.TotalPlayers = 1
	in.MinMembers = 3
	_, err = svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	in = validInput()
	in.InvitedUserIDs = append(in.InvitedUserIDs, organizer().UserID)
	_, err = svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrOrganizerInvited)

	// Nothing was persisted by any rejected call.
	assert.Empty(t, store.bookings)
	assert.Empty(t, store.participants)
}

func TestCreateGroupBooking_RejectsOutOfRangeCounts(t *testing.T) {
	store := newFakeStore()
	svc := fixedService(store, nil, time.Now().UTC())
	ctx := context.Background()

	// Counts above the 16-bit column range must be rejected, not wrapped
	// into small values on conversion (65540 would wrap to 4).
	in := validInput()
	in.TotalPlayers = 65540
	in.MinMembers = 65537
	_, err := svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	in = validInput()
	in.TotalPlayers = 70000
	in.GuestCount = 70000
	in.MinMembers = 2
	_, err = svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	in = validInput()
	in.GuestCount = -1
	_, err = svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	// The largest representable counts still pass.
	in = validInput()
	in.TotalPlayers = 65535
	in.GuestCount = 65535
	in.MinMembers = 65535
	b, err := svc.CreateGroupBooking(ctx, organizer(), testHOA(), in)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), b.TotalPlayers)
	assert.Equal(t, uint16(65535), b.MinMembers)

	// Only the accepted booking reached the store.
	assert.Len(t, store.bookings, 1)
}

func TestCreateGroupBooking_FailClosed(t *testing.T) {
	store := newFakeStore()
	svc := fixedService(store, nil, time.Now().UTC())
	ctx := context.Background()

	_, err := svc.CreateGroupBooking(ctx, nil, testHOA(), validInput())
	assert.ErrorIs(t, err, ErrForbidden)

	inactive := organizer()
	inactive.IsActive = false
	_, err = svc.CreateGroupBooking(ctx, inactive, testHOA(), validInput())
	assert.ErrorIs(t, err, ErrForbidden)

	// Organizer from a different HOA than the tenant being booked.
	foreign := organizer()
	foreign.HOAID = 99
	_, err = svc.CreateGroupBooking(ctx, foreign, testHOA(), validInput())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateGroupBooking_PublishesInvitationEvent(t *testing.T) {
	store := newFakeStore()
	pub := &capturingPublisher{}
	svc := fixedService(store, pub, time.Now().UTC())

	b, err := svc.CreateGroupBooking(context.Background(), organizer(), testHOA(), validInput())
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, queue.EventBookingInvited, ev.Type)
	assert.Equal(t, b.ID, ev.BookingID)
	assert.ElementsMatch(t, []uint64{11, 12, 13}, ev.RecipientIDs)
	assert.NotEmpty(t, ev.EventID)
}

func TestCreateGroupBooking_PublishFailureDoesNotFailBooking(t *testing.T) {
	store := newFakeStore()
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := fixedService(store, pub, time.Now().UTC())

	_, err := svc.CreateGroupBooking(context.Background(), organizer(), testHOA(), validInput())
	assert.NoError(t, err)
	assert.Len(t, store.bookings, 1)
}

func createPending(t *testing.T, svc *Service, store *fakeStore) model.Booking {
	t.Helper()
	b, err := svc.CreateGroupBooking(context.Background(), organizer(), testHOA(), validInput())
	require.NoError(t, err)
	return b
}

func TestRespondToInvitation(t *testing.T) {
	store := newFakeStore()
	svc := fixedService(store, nil, time.Now().UTC())
	ctx := context.Background()
	createPending(t, svc, store)

	var inviteeRow model.BookingParticipant
	for _, p := range store.participants {
		if p.UserID == 11 {
			inviteeRow = p
		}
	}
	require.NotZero(t, inviteeRow.ID)

	invitee := &model.Profile{UserID: 11, HOAID: 1, Role: "member", IsActive: true}

	// Wrong status token.
	err := svc.RespondToInvitation(ctx, invitee, inviteeRow.ID, "maybe", nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// A different member may not respond on the invitee's behalf.
	stranger := &model.Profile{UserID: 12, HOAID: 1, Role: "member", IsActive: true}
	err = svc.RespondToInvitation(ctx, stranger, inviteeRow.ID, model.ParticipantStatusAccepted, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	// Hours cannot be charged while the booking is still pending.
	hours := 1.5
	err = svc.RespondToInvitation(ctx, invitee, inviteeRow.ID, model.ParticipantStatusAccepted, &hours)
	assert.ErrorIs(t, err, ErrHoursNotChargeable)

	// Plain accept works.
	err = svc.RespondToInvitation(ctx, invitee, inviteeRow.ID, model.ParticipantStatusAccepted, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ParticipantStatusAccepted, store.participants[inviteeRow.ID].Status)

	// Responding twice is rejected.
	err = svc.RespondToInvitation(ctx, invitee, inviteeRow.ID, model.ParticipantStatusDeclined, nil)
	assert.ErrorIs(t, err, ErrAlreadyResponded)
}

func TestConfirmAndCancelTransitions(t *testing.T) {
	store := newFakeStore()
	svc := fixedService(store, &capturingPublisher{}, time.Now().UTC())
	ctx := context.Background()
	org := organizer()

	b := createPending(t, svc, store)
	got, err := svc.Confirm(ctx, org, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, got.Status)

	// Confirmed is terminal: no cancel, no re-confirm.
	_, err = svc.Cancel(ctx, org, b.ID)
	assert.ErrorIs(t, err, ErrNotPending)
	_, err = svc.Confirm(ctx, org, b.ID)
	assert.ErrorIs(t, err, ErrNotPending)

	b2 := createPending(t, svc, store)
	got, err = svc.Cancel(ctx, org, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, got.Status)

	// A member who is not the organizer may not confirm, but an
	// hoa_admin of the same HOA may.
	b3 := createPending(t, svc, store)
	member := &model.Profile{UserID: 42, HOAID: 1, Role: "member", IsActive: true}
	_, err = svc.Confirm(ctx, member, b3.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	admin := &model.Profile{UserID: 43, HOAID: 1, Role: "hoa_admin", IsActive: true}
	_, err = svc.Confirm(ctx, admin, b3.ID)
	assert.NoError(t, err)

	// An admin of another HOA has no reach here.
	b4 := createPending(t, svc, store)
	foreignAdmin := &model.Profile{UserID: 44, HOAID: 2, Role: "hoa_admin", IsActive: true}
	_, err = svc.Cancel(ctx, foreignAdmin, b4.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSweepExpired(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := fixedService(store, nil, now)
	ctx := context.Background()

	stale := createPending(t, svc, store)
	fresh := createPending(t, svc, store)
	done := createPending(t, svc, store)
	_, err := svc.Confirm(ctx, organizer(), done.ID)
	require.NoError(t, err)

	// Move the clock past the stale booking's expiry but keep the fresh
	// one alive.
	b := store.bookings[fresh.ID]
	b.ExpiresAt = now.Add(2 * time.Hour)
	store.bookings[fresh.ID] = b

	svc.now = func() time.Time { return now.Add(31 * time.Minute) }
	n, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, gone := store.bookings[stale.ID]
	assert.False(t, gone, "expired pending booking must be deleted")
	_, kept := store.bookings[fresh.ID]
	assert.True(t, kept)
	_, confirmedKept := store.bookings[done.ID]
	assert.True(t, confirmedKept, "confirmed bookings are never swept")
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pending := &model.Booking{Status: model.BookingStatusPending, ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, IsExpired(pending, now))

	notYet := &model.Booking{Status: model.BookingStatusPending, ExpiresAt: now.Add(time.Minute)}
	assert.False(t, IsExpired(notYet, now))

	confirmed := &model.Booking{Status: model.BookingStatusConfirmed, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, IsExpired(confirmed, now), "elapsed expiry on a confirmed booking is meaningless")

	assert.False(t, IsExpired(nil, now))
}
