package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/hoa-court-booking/internal/booking"
	"github.com/courtside/hoa-court-booking/internal/model"
	"github.com/courtside/hoa-court-booking/internal/obs"
	"github.com/courtside/hoa-court-booking/internal/permission"
	"github.com/courtside/hoa-court-booking/internal/repository"
)

// BookingHandler exposes the booking lifecycle over HTTP.  Lifecycle
// rules live in the booking service; the handler adds the HOA-level
// policy checks that need tenant settings (advance window, guest
// policy, court numbers) and translates errors to status codes.
type BookingHandler struct {
	Svc          *booking.Service
	Bookings     *repository.BookingRepo
	Participants *repository.ParticipantRepo
	HOAs         *repository.HOARepo
}

func NewBookingHandler(svc *booking.Service, b *repository.BookingRepo, p *repository.ParticipantRepo, h *repository.HOARepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: b, Participants: p, HOAs: h}
}

type createBookingReq struct {
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
	Courts         []int     `json:"courts" validate:"required,min=1,dive,min=1"`
	TotalPlayers   int       `json:"total_players" validate:"required,min=1,max=65535"`
	GuestCount     int       `json:"guest_count" validate:"min=0,max=65535"`
	MinMembers     int       `json:"min_members" validate:"required,min=1,max=65535"`
	InvitedUserIDs []uint64  `json:"invited_user_ids"`
}

type participantPart struct {
	ID           uint64   `json:"id"`
	UserID       uint64   `json:"user_id"`
	Status       string   `json:"status"`
	HoursCharged *float64 `json:"hours_charged"`
}

type bookingResp struct {
	ID           uint64            `json:"id"`
	HOAID        uint64            `json:"hoa_id"`
	OrganizerID  uint64            `json:"organizer_id"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	Courts       []int             `json:"courts"`
	Status       string            `json:"status"`
	TotalPlayers uint16            `json:"total_players"`
	GuestCount   uint16            `json:"guest_count"`
	MinMembers   uint16            `json:"min_members"`
	IsPrimeTime  bool              `json:"is_prime_time"`
	ExpiresAt    time.Time         `json:"expires_at"`
	CreatedAt    time.Time         `json:"created_at"`
	Participants []participantPart `json:"participants,omitempty"`
}

func toBookingResp(b model.Booking, parts []model.BookingParticipant) bookingResp {
	resp := bookingResp{
		ID:           b.ID,
		HOAID:        b.HOAID,
		OrganizerID:  b.OrganizerID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Courts:       b.Courts,
		Status:       b.Status,
		TotalPlayers: b.TotalPlayers,
		GuestCount:   b.GuestCount,
		MinMembers:   b.MinMembers,
		IsPrimeTime:  b.IsPrimeTime,
		ExpiresAt:    b.ExpiresAt,
		CreatedAt:    b.CreatedAt,
	}
	for _, p := range parts {
		resp.Participants = append(resp.Participants, participantPart{
			ID: p.ID, UserID: p.UserID, Status: p.Status, HoursCharged: p.HoursCharged,
		})
	}
	return resp
}

// Create places a new group booking as the authenticated member.
func (h *BookingHandler) Create(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hoa, err := h.HOAs.GetByID(ctx, act.HOAID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load community failed"})
	}
	if !hoa.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "this community is not accepting bookings"})
	}
	if msg := checkHOAPolicy(&hoa, &req); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}

	b, err := h.Svc.CreateGroupBooking(ctx, act, &hoa, booking.CreateInput{
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Courts:         req.Courts,
		TotalPlayers:   req.TotalPlayers,
		GuestCount:     req.GuestCount,
		MinMembers:     req.MinMembers,
		InvitedUserIDs: req.InvitedUserIDs,
	})
	if err != nil {
		return bookingError(c, err)
	}

	obs.BookingsCreated.WithLabelValues(strconv.FormatBool(b.IsPrimeTime)).Inc()
	parts, _ := h.Participants.ListByBooking(ctx, b.ID)
	return c.JSON(http.StatusCreated, toBookingResp(b, parts))
}

// checkHOAPolicy enforces tenant settings on a new booking: courts must
// exist, guests must be allowed, and the slot must fall inside the
// advance-booking window.
func checkHOAPolicy(hoa *model.HOA, req *createBookingReq) string {
	for _, court := range req.Courts {
		if court < 1 || court > int(hoa.CourtCount) {
			return "unknown court number"
		}
	}
	if req.GuestCount > 0 && !hoa.AllowGuests {
		return "guests are not allowed in this community"
	}
	if hoa.BookingWindowDays > 0 {
		horizon := time.Now().UTC().AddDate(0, 0, int(hoa.BookingWindowDays))
		if req.StartTime.After(horizon) {
			return "booking is beyond the advance window"
		}
	}
	return ""
}

// List returns the caller's bookings.  ?scope=organized narrows to
// bookings they organized; the default covers everything they
// participate in.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var list []model.Booking
	if c.QueryParam("scope") == "organized" {
		list, err = h.Bookings.ListByOrganizer(ctx, uid)
	} else {
		list, err = h.Bookings.ListByUser(ctx, uid)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]bookingResp, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResp(b, nil))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// ListForHOA returns every booking in the admin's HOA.
func (h *BookingHandler) ListForHOA(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByHOA(ctx, act.HOAID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResp(b, nil))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Get returns one booking with its participant list.  Visible to its
// participants and to admins with reach into the booking's HOA.
func (h *BookingHandler) Get(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	parts, err := h.Participants.ListByBooking(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	visible := false
	for _, p := range parts {
		if p.UserID == act.UserID {
			visible = true
			break
		}
	}
	if !visible {
		if !permission.Has(act, permission.ManageAllBookings) || !permission.CanAccessHOA(act, b.HOAID) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
	return c.JSON(http.StatusOK, toBookingResp(b, parts))
}

// Confirm moves a pending booking to confirmed.
func (h *BookingHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.Svc.Confirm, model.BookingStatusConfirmed)
}

// Cancel moves a pending booking to cancelled.
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.Svc.Cancel, model.BookingStatusCancelled)
}

func (h *BookingHandler) transition(c echo.Context, op func(context.Context, *model.Profile, uint64) (model.Booking, error), target string) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := op(ctx, act, id)
	if err != nil {
		return bookingError(c, err)
	}
	obs.BookingStatusChanges.WithLabelValues(target).Inc()
	return c.JSON(http.StatusOK, toBookingResp(b, nil))
}

type respondReq struct {
	Status       string   `json:"status" validate:"required,oneof=accepted declined"`
	HoursCharged *float64 `json:"hours_charged" validate:"omitempty,gt=0"`
}

// Respond records the caller's answer to a booking invitation.
func (h *BookingHandler) Respond(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid participant id"})
	}
	var req respondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.RespondToInvitation(ctx, act, id, req.Status, req.HoursCharged); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "response recorded"})
}

// bookingError maps service errors onto HTTP status codes.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, booking.ErrNotPending),
		errors.Is(err, booking.ErrAlreadyResponded),
		errors.Is(err, booking.ErrHoursNotChargeable):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidTimeRange),
		errors.Is(err, booking.ErrNoCourts),
		errors.Is(err, booking.ErrInvalidPlayers),
		errors.Is(err, booking.ErrOrganizerInvited),
		errors.Is(err, booking.ErrInvalidStatus):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
}
