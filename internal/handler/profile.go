package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/hoa-court-booking/internal/model"
	"github.com/courtside/hoa-court-booking/internal/permission"
	"github.com/courtside/hoa-court-booking/internal/repository"
	"github.com/courtside/hoa-court-booking/internal/utils"
)

// ProfileHandler serves the member's own profile and hour balances.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

type profilePart struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id"`
	HOAID         uint64    `json:"hoa_id"`
	FullName      string    `json:"full_name"`
	PhoneNumber   string    `json:"phone_number"`
	Role          string    `json:"role"`
	RoleName      string    `json:"role_name"`
	IsActive      bool      `json:"is_active"`
	PrimeHours    uint32    `json:"prime_hours"`
	StandardHours uint32    `json:"standard_hours"`
	LastReset     time.Time `json:"last_reset"`
}

func toProfilePart(p model.Profile) profilePart {
	return profilePart{
		ID:            p.ID,
		UserID:        p.UserID,
		HOAID:         p.HOAID,
		FullName:      p.FullName,
		PhoneNumber:   utils.FormatPhoneNumber(p.PhoneNumber),
		Role:          p.Role,
		RoleName:      permission.DisplayName(permission.Role(p.Role)),
		IsActive:      p.IsActive,
		PrimeHours:    p.PrimeHours,
		StandardHours: p.StandardHours,
		LastReset:     p.LastReset,
	}
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	return c.JSON(http.StatusOK, toProfilePart(*act))
}

type updateProfileReq struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

// Update renames the caller's profile.  Phone, role and quota fields
// are not self-service.
func (h *ProfileHandler) Update(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Profiles.UpdateName(ctx, act.ID, req.FullName); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	act.FullName = req.FullName
	return c.JSON(http.StatusOK, toProfilePart(*act))
}

// Hours returns the caller's remaining hour quotas.
func (h *ProfileHandler) Hours(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"prime_hours":    act.PrimeHours,
		"standard_hours": act.StandardHours,
		"last_reset":     act.LastReset,
	})
}
