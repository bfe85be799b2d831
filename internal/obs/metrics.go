// Package obs exposes the application's Prometheus metrics.  Counters
// are registered on the default registry and served from /metrics.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts group bookings persisted, labelled by
	// prime-time classification.
	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtbooking_bookings_created_total",
		Help: "Group bookings created, by prime-time classification.",
	}, []string{"prime_time"})

	// BookingStatusChanges counts confirm/cancel transitions.
	BookingStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtbooking_booking_status_changes_total",
		Help: "Booking status transitions, by target status.",
	}, []string{"status"})

	// BookingsExpired counts pending bookings removed by the sweep.
	BookingsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtbooking_bookings_expired_total",
		Help: "Pending bookings deleted after their hold expired.",
	})

	// NotificationsSent counts successful notification deliveries.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtbooking_notifications_sent_total",
		Help: "Notifications delivered to recipients.",
	})

	// NotificationsFailed counts per-recipient delivery failures.
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtbooking_notifications_failed_total",
		Help: "Notification deliveries that failed.",
	})

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courtbooking_rate_limited_total",
		Help: "Requests rejected by the rate limiter, by route group.",
	}, []string{"group"})
)
