package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/hoa-court-booking/internal/permission"
	"github.com/courtside/hoa-court-booking/internal/repository"
)

// AdminUserHandler lets HOA admins manage member profiles inside their
// own community: role assignment, deactivation and quota resets.
// Super admins pass the same checks for any community.
type AdminUserHandler struct {
	Profiles *repository.ProfileRepo
}

func NewAdminUserHandler(p *repository.ProfileRepo) *AdminUserHandler {
	return &AdminUserHandler{Profiles: p}
}

// ListMembers returns every profile in the admin's HOA, admins first.
func (h *AdminUserHandler) ListMembers(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Profiles.ListByHOA(ctx, act.HOAID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]profilePart, 0, len(list))
	for _, p := range list {
		out = append(out, toProfilePart(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"members": out})
}

// AssignableRoles returns which roles the caller may hand out.  The
// frontend drives its role dropdown off this list rather than any
// client-side level comparison.
func (h *AdminUserHandler) AssignableRoles(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	roles := permission.AssignableRoles(act)
	out := make([]echo.Map, 0, len(roles))
	for _, r := range roles {
		out = append(out, echo.Map{"role": string(r), "name": permission.DisplayName(r)})
	}
	return c.JSON(http.StatusOK, echo.Map{"roles": out})
}

type assignRoleReq struct {
	Role string `json:"role" validate:"required"`
}

// AssignRole changes a member's role.  The target must be manageable by
// the caller and the new role must be in the caller's assignable set.
func (h *AdminUserHandler) AssignRole(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid profile id"})
	}
	var req assignRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := permission.Role(req.Role)
	if !role.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	target, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !permission.CanManageUser(act, &target) || !permission.CanAssignRole(act, role) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Profiles.UpdateRole(ctx, target.ID, string(role)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	target.Role = string(role)
	return c.JSON(http.StatusOK, toProfilePart(target))
}

type setActiveReq struct {
	IsActive bool `json:"is_active"`
}

// SetActive deactivates or reactivates a member profile.  Deactivation
// is soft: the row stays, every permission check fails from then on.
func (h *AdminUserHandler) SetActive(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid profile id"})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	target, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !permission.CanManageUser(act, &target) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if target.ID == act.ID {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "cannot change your own active state"})
	}

	if err := h.Profiles.SetActive(ctx, target.ID, req.IsActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	target.IsActive = req.IsActive
	return c.JSON(http.StatusOK, toProfilePart(target))
}

type resetHoursReq struct {
	PrimeHours    uint32 `json:"prime_hours"`
	StandardHours uint32 `json:"standard_hours"`
}

// ResetHours replaces a member's quota counters and stamps the reset
// time.  Used for the periodic allowance refresh.
func (h *AdminUserHandler) ResetHours(c echo.Context) error {
	act, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid profile id"})
	}
	var req resetHoursReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	target, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !permission.CanManageUser(act, &target) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	now := time.Now().UTC()
	if err := h.Profiles.ResetHours(ctx, target.ID, req.PrimeHours, req.StandardHours, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	target.PrimeHours = req.PrimeHours
	target.StandardHours = req.StandardHours
	target.LastReset = now
	return c.JSON(http.StatusOK, toProfilePart(target))
}
