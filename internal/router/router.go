package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courtside/hoa-court-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/courtside/hoa-court-booking/internal/middleware" // import middleware for JWT authentication and permission enforcement
	"github.com/courtside/hoa-court-booking/internal/permission"
)

// Handlers collects every handler the route table needs.
type Handlers struct {
	Auth     *handler.AuthHandler
	Reset    *handler.PasswordResetHandler
	Profile  *handler.ProfileHandler
	Booking  *handler.BookingHandler
	Users    *handler.AdminUserHandler
	HOAs     *handler.AdminHOAHandler
	Push     *handler.PushHandler
	Profiles middleware.ProfileLoader
}

// RegisterRoutes registers routes that do not require authentication:
// the health check and the Prometheus metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAPI wires the full v1 route table.  Unauthenticated
// operations live under /v1/auth; everything else requires a valid
// access token, and most routes additionally load the actor's profile
// and check permissions through the assignable-roles engine.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string) {
	// Session endpoints: no existing session required.
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)
	// Rotating refresh: exchanges the refresh token for a new pair.
	g.POST("/refresh", h.Auth.Refresh)
	// Non-rotating variant: new access token, same refresh token.
	g.POST("/refresh-access", h.Auth.RefreshAccess)
	// Logout accepts a refresh_token body without JWT authentication.
	g.POST("/logout", h.Auth.Logout)
	g.POST("/password-reset", h.Reset.Request)
	g.POST("/password-reset/confirm", h.Reset.Confirm)

	// Everything below requires a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", h.Auth.Me)
	auth.POST("/logout", h.Auth.Logout)

	// Self-service routes: the permission middleware loads the actor
	// fresh so deactivation takes effect immediately.
	member := auth.Group("")
	member.Use(middleware.RequirePermission(h.Profiles, permission.ViewOwnProfile))
	member.GET("/profile", h.Profile.Get)
	member.PATCH("/profile", h.Profile.Update)
	member.GET("/profile/hours", h.Profile.Hours)
	member.POST("/push/subscribe", h.Push.Subscribe)
	member.POST("/push/unsubscribe", h.Push.Unsubscribe)

	bookings := auth.Group("/bookings")
	bookings.Use(middleware.RequirePermission(h.Profiles, permission.ManageOwnBookings))
	bookings.POST("", h.Booking.Create)
	bookings.GET("", h.Booking.List)
	bookings.GET("/:id", h.Booking.Get)
	bookings.POST("/:id/confirm", h.Booking.Confirm)
	bookings.POST("/:id/cancel", h.Booking.Cancel)
	bookings.POST("/participants/:id/respond", h.Booking.Respond)

	// Tenant administration: HOA admins inside their own community.
	admin := auth.Group("/admin")
	admin.Use(middleware.RequirePermission(h.Profiles, permission.ManageHOAUsers))
	admin.GET("/members", h.Users.ListMembers)
	admin.GET("/roles", h.Users.AssignableRoles)
	admin.POST("/members/:id/role", h.Users.AssignRole)
	admin.POST("/members/:id/active", h.Users.SetActive)
	admin.POST("/members/:id/reset-hours", h.Users.ResetHours)

	adminBookings := auth.Group("/admin/bookings")
	adminBookings.Use(middleware.RequirePermission(h.Profiles, permission.ManageAllBookings))
	adminBookings.GET("", h.Booking.ListForHOA)

	// Platform administration: super admins only.
	super := auth.Group("/admin/hoas")
	super.Use(middleware.RequirePermission(h.Profiles, permission.ManageHOAs))
	super.POST("", h.HOAs.Create)
	super.GET("", h.HOAs.List)
	super.PATCH("/:id", h.HOAs.Update)
	super.POST("/:id/active", h.HOAs.SetActive)
	super.GET("/:id/stats", h.HOAs.Stats)
}
