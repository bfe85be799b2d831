package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage_Invitation(t *testing.T) {
	msg, err := buildMessage(BookingEvent{
		Type:          EventBookingInvited,
		BookingID:     42,
		OrganizerName: "Dana Whitfield",
		StartsAt:      "2026-03-07T10:00:00Z",
		EndsAt:        "2026-03-07T11:00:00Z",
		Courts:        []int{1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "Court booking invitation", msg.Title)
	assert.Contains(t, msg.Body, "Dana Whitfield")
	assert.Contains(t, msg.Body, "court 1, 2")
	require.Len(t, msg.Actions, 2)
	assert.Equal(t, "accept", msg.Actions[0].Action)
	assert.Equal(t, "decline", msg.Actions[1].Action)
	assert.Equal(t, uint64(42), msg.Data["booking_id"])
}

func TestBuildMessage_ConfirmedAndCancelled(t *testing.T) {
	ev := BookingEvent{
		Type:     EventBookingConfirmed,
		StartsAt: "2026-03-07T10:00:00Z",
		EndsAt:   "2026-03-07T11:00:00Z",
		Courts:   []int{3},
	}
	msg, err := buildMessage(ev)
	require.NoError(t, err)
	assert.Equal(t, "Booking confirmed", msg.Title)
	assert.Empty(t, msg.Actions)

	ev.Type = EventBookingCancelled
	msg, err = buildMessage(ev)
	require.NoError(t, err)
	assert.Equal(t, "Booking cancelled", msg.Title)
}

func TestBuildMessage_UnknownType(t *testing.T) {
	_, err := buildMessage(BookingEvent{Type: "booking.rescheduled"})
	assert.Error(t, err)
}

func TestFormatSlot(t *testing.T) {
	got := formatSlot("2026-03-07T10:00:00Z", "2026-03-07T11:30:00Z")
	assert.Equal(t, "Sat Mar 7 10:00-11:30", got)

	// Unparseable bounds fall back to the raw values.
	got = formatSlot("garbage", "2026-03-07T11:30:00Z")
	assert.Equal(t, "garbage-2026-03-07T11:30:00Z", got)
}
