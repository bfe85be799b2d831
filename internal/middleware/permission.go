package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courtside/hoa-court-booking/internal/model"
	"github.com/courtside/hoa-court-booking/internal/permission"
)

// ProfileLoader fetches the profile belonging to a user id.  The
// repository layer satisfies it.
type ProfileLoader interface {
	GetByUserID(ctx context.Context, userID uint64) (model.Profile, error)
}

// RequirePermission loads the actor's profile from the database and
// verifies it holds every listed permission.  Loading fresh on each
// request means a deactivation or role change takes effect immediately,
// not at token expiry.  The loaded profile is stored under "actor" for
// handlers.  Missing profile, inactive profile or insufficient
// permissions all answer 403.
func RequirePermission(profiles ProfileLoader, perms ...permission.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			prof, err := profiles.GetByUserID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			actor := &prof
			for _, p := range perms {
				if !permission.Has(actor, p) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
				}
			}
			c.Set("actor", actor)
			return next(c)
		}
	}
}
