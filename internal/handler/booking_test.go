package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/courtside/hoa-court-booking/internal/model"
)

func policyHOA() model.HOA {
	return model.HOA{
		ID:                1,
		CourtCount:        4,
		AllowGuests:       true,
		BookingWindowDays: 7,
	}
}

func TestCheckHOAPolicy_OK(t *testing.T) {
	hoa := policyHOA()
	req := createBookingReq{
		StartTime:  time.Now().UTC().Add(24 * time.Hour),
		Courts:     []int{1, 4},
		GuestCount: 1,
	}
	assert.Empty(t, checkHOAPolicy(&hoa, &req))
}

func TestCheckHOAPolicy_UnknownCourt(t *testing.T) {
	hoa := policyHOA()
	req := createBookingReq{
		StartTime: time.Now().UTC().Add(24 * time.Hour),
		Courts:    []int{5},
	}
	assert.Equal(t, "unknown court number", checkHOAPolicy(&hoa, &req))

	req.Courts = []int{0}
	assert.Equal(t, "unknown court number", checkHOAPolicy(&hoa, &req))
}

func TestCheckHOAPolicy_GuestsDisallowed(t *testing.T) {
	hoa := policyHOA()
	hoa.AllowGuests = false
	req := createBookingReq{
		StartTime:  time.Now().UTC().Add(24 * time.Hour),
		Courts:     []int{1},
		GuestCount: 2,
	}
	assert.Equal(t, "guests are not allowed in this community", checkHOAPolicy(&hoa, &req))

	// Zero guests is fine even with the guest policy off.
	req.GuestCount = 0
	assert.Empty(t, checkHOAPolicy(&hoa, &req))
}

func TestCheckHOAPolicy_BeyondAdvanceWindow(t *testing.T) {
	hoa := policyHOA()
	req := createBookingReq{
		StartTime: time.Now().UTC().AddDate(0, 0, 8),
		Courts:    []int{1},
	}
	assert.Equal(t, "booking is beyond the advance window", checkHOAPolicy(&hoa, &req))

	// A window of zero means no horizon is enforced.
	hoa.BookingWindowDays = 0
	assert.Empty(t, checkHOAPolicy(&hoa, &req))
}

func TestValidator_CreateBookingReq(t *testing.T) {
	v := NewValidator()

	valid := createBookingReq{
		StartTime:    time.Now().UTC(),
		EndTime:      time.Now().UTC().Add(time.Hour),
		Courts:       []int{1},
		TotalPlayers: 4,
		MinMembers:   2,
	}
	assert.NoError(t, v.Validate(&valid))

	missingCourts := valid
	missingCourts.Courts = nil
	assert.Error(t, v.Validate(&missingCourts))

	badMin := valid
	badMin.MinMembers = 0
	assert.Error(t, v.Validate(&badMin))

	// Counts above the 16-bit storage range fail validation up front.
	tooMany := valid
	tooMany.TotalPlayers = 65540
	assert.Error(t, v.Validate(&tooMany))

	tooManyGuests := valid
	tooManyGuests.GuestCount = 70000
	assert.Error(t, v.Validate(&tooManyGuests))
}
