package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/hoa-court-booking/internal/model"
	"github.com/courtside/hoa-court-booking/internal/repository"
	"github.com/courtside/hoa-court-booking/internal/utils"
)

// AdminHOAHandler is the super-admin surface for creating and tuning
// communities.  Routes using it sit behind the manage-hoas permission.
type AdminHOAHandler struct {
	HOAs     *repository.HOARepo
	Bookings *repository.BookingRepo
}

func NewAdminHOAHandler(h *repository.HOARepo, b *repository.BookingRepo) *AdminHOAHandler {
	return &AdminHOAHandler{HOAs: h, Bookings: b}
}

type hoaSettingsReq struct {
	Name              string   `json:"name" validate:"required,min=2,max=100"`
	CourtCount        uint8    `json:"court_count" validate:"required,min=1,max=50"`
	CourtNames        []string `json:"court_names" validate:"omitempty,dive,min=1,max=50"`
	DefaultPrimeHours uint32   `json:"default_prime_hours"`
	DefaultStdHours   uint32   `json:"default_standard_hours"`
	WeekdayPrimeStart uint8    `json:"weekday_prime_start" validate:"max=23"`
	WeekdayPrimeEnd   uint8    `json:"weekday_prime_end" validate:"max=24"`
	WeekendPrimeStart uint8    `json:"weekend_prime_start" validate:"max=23"`
	WeekendPrimeEnd   uint8    `json:"weekend_prime_end" validate:"max=24"`
	BookingWindowDays uint8    `json:"booking_window_days"`
	MaxAdvanceDays    uint8    `json:"max_advance_days"`
	AllowGuests       bool     `json:"allow_guests"`
}

type createHOAReq struct {
	hoaSettingsReq
	Slug string `json:"slug"`
}

type hoaPart struct {
	ID                uint64    `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	InvitationCode    string    `json:"invitation_code"`
	IsActive          bool      `json:"is_active"`
	CourtCount        uint8     `json:"court_count"`
	CourtNames        []string  `json:"court_names"`
	DefaultPrimeHours uint32    `json:"default_prime_hours"`
	DefaultStdHours   uint32    `json:"default_standard_hours"`
	WeekdayPrimeStart uint8     `json:"weekday_prime_start"`
	WeekdayPrimeEnd   uint8     `json:"weekday_prime_end"`
	WeekendPrimeStart uint8     `json:"weekend_prime_start"`
	WeekendPrimeEnd   uint8     `json:"weekend_prime_end"`
	BookingWindowDays uint8     `json:"booking_window_days"`
	MaxAdvanceDays    uint8     `json:"max_advance_days"`
	AllowGuests       bool      `json:"allow_guests"`
	CreatedAt         time.Time `json:"created_at"`
}

func toHOAPart(h model.HOA) hoaPart {
	return hoaPart{
		ID:                h.ID,
		Name:              h.Name,
		Slug:              h.Slug,
		InvitationCode:    h.InvitationCode,
		IsActive:          h.IsActive,
		CourtCount:        h.CourtCount,
		CourtNames:        h.CourtNames,
		DefaultPrimeHours: h.DefaultPrimeHours,
		DefaultStdHours:   h.DefaultStdHours,
		WeekdayPrimeStart: h.WeekdayPrimeStart,
		WeekdayPrimeEnd:   h.WeekdayPrimeEnd,
		WeekendPrimeStart: h.WeekendPrimeStart,
		WeekendPrimeEnd:   h.WeekendPrimeEnd,
		BookingWindowDays: h.BookingWindowDays,
		MaxAdvanceDays:    h.MaxAdvanceDays,
		AllowGuests:       h.AllowGuests,
		CreatedAt:         h.CreatedAt,
	}
}

func applySettings(h *model.HOA, req *hoaSettingsReq) {
	h.Name = strings.TrimSpace(req.Name)
	h.CourtCount = req.CourtCount
	h.CourtNames = req.CourtNames
	h.DefaultPrimeHours = req.DefaultPrimeHours
	h.DefaultStdHours = req.DefaultStdHours
	h.WeekdayPrimeStart = req.WeekdayPrimeStart
	h.WeekdayPrimeEnd = req.WeekdayPrimeEnd
	h.WeekendPrimeStart = req.WeekendPrimeStart
	h.WeekendPrimeEnd = req.WeekendPrimeEnd
	h.BookingWindowDays = req.BookingWindowDays
	h.MaxAdvanceDays = req.MaxAdvanceDays
	h.AllowGuests = req.AllowGuests
}

// Create registers a new community.  The slug is caller-chosen; the
// invitation code is generated here and regenerated on the rare
// collision with an existing one.
func (h *AdminHOAHandler) Create(c echo.Context) error {
	var req createHOAReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}
	// An omitted slug is derived from the name.
	if req.Slug == "" {
		req.Slug = utils.GenerateSlug(req.Name)
	}
	if !utils.IsValidSlug(req.Slug) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid slug"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hoa := model.HOA{Slug: req.Slug, IsActive: true}
	applySettings(&hoa, &req.hoaSettingsReq)

	// Retry on invitation-code collision: the code space is large, so a
	// second collision in a row means something else is wrong.
	for attempt := 0; attempt < 3; attempt++ {
		code, err := utils.GenerateInvitationCode()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate code failed"})
		}
		hoa.InvitationCode = code

		err = h.HOAs.Create(ctx, &hoa)
		if err == nil {
			return c.JSON(http.StatusCreated, toHOAPart(hoa))
		}
		if errors.Is(err, repository.ErrSlugExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		if !errors.Is(err, repository.ErrInviteCodeDupe) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
}

// List returns every community.
func (h *AdminHOAHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.HOAs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]hoaPart, 0, len(list))
	for _, hoa := range list {
		out = append(out, toHOAPart(hoa))
	}
	return c.JSON(http.StatusOK, echo.Map{"hoas": out})
}

// Update rewrites a community's mutable settings.  Slug and invitation
// code never change after creation.
func (h *AdminHOAHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hoa id"})
	}
	var req hoaSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hoa, err := h.HOAs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hoa not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	applySettings(&hoa, &req)

	if err := h.HOAs.Update(ctx, &hoa); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toHOAPart(hoa))
}

// SetActive toggles whether a community accepts registrations and
// bookings.
func (h *AdminHOAHandler) SetActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hoa id"})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.HOAs.SetActive(ctx, id, req.IsActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hoa not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": req.IsActive})
}

// Stats reports member and booking counts for one community.
func (h *AdminHOAHandler) Stats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hoa id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hoa, err := h.HOAs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hoa not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	members, err := h.HOAs.CountMembers(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	bookings, err := h.Bookings.ListByHOA(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	byStatus := map[string]int{}
	for _, b := range bookings {
		byStatus[b.Status]++
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hoa":                toHOAPart(hoa),
		"member_count":       members,
		"booking_count":      len(bookings),
		"bookings_by_status": byStatus,
	})
}
