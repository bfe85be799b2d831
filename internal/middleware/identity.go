package middleware

// identity.go defines helpers shared across middleware files for reading
// the authenticated identity that JWTAuth stored in the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/courtside/hoa-court-booking/internal/model"
)

// UserID returns the authenticated user's id, or (0, false) when the
// request is unauthenticated.
func UserID(c echo.Context) (uint64, bool) {
	if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
		return v, true
	}
	return 0, false
}

// Actor returns the freshly loaded profile stored by RequirePermission,
// or nil on routes that skip the permission middleware.
func Actor(c echo.Context) *model.Profile {
	if p, ok := c.Get("actor").(*model.Profile); ok {
		return p
	}
	return nil
}

// currentUserID renders the user id for rate-limit keys. It returns
// "anon" when no user is authenticated so unauthenticated traffic
// shares a per-IP bucket.
func currentUserID(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
