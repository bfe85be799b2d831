package booking

import (
	"time"

	"github.com/courtside/hoa-court-booking/internal/model"
)

// Window describes an HOA's prime-time configuration as clock hours.
// Weekday and weekend ranges are kept separate because communities
// price weekend daytime differently from weekday evenings.  Ranges are
// half-open: a start of 17 and end of 21 covers 17:00:00 through
// 20:59:59.
type Window struct {
	WeekdayStart int // first prime hour Monday-Friday
	WeekdayEnd   int // first non-prime hour Monday-Friday
	WeekendStart int // first prime hour Saturday/Sunday
	WeekendEnd   int // first non-prime hour Saturday/Sunday
}

// DefaultWindow returns the stock configuration: weekday evenings
// 17:00-21:00 and weekend days 08:00-20:00.
func DefaultWindow() Window {
	return Window{WeekdayStart: 17, WeekdayEnd: 21, WeekendStart: 8, WeekendEnd: 20}
}

// WindowForHOA builds a Window from an HOA's configured prime hours,
// falling back to the defaults when the row carries an empty range.
func WindowForHOA(h *model.HOA) Window {
	w := DefaultWindow()
	if h == nil {
		return w
	}
	if h.WeekdayPrimeEnd > h.WeekdayPrimeStart {
		w.WeekdayStart = int(h.WeekdayPrimeStart)
		w.WeekdayEnd = int(h.WeekdayPrimeEnd)
	}
	if h.WeekendPrimeEnd > h.WeekendPrimeStart {
		w.WeekendStart = int(h.WeekendPrimeStart)
		w.WeekendEnd = int(h.WeekendPrimeEnd)
	}
	return w
}

// IsPrimeTime reports whether t falls inside the window.  Only the
// weekday and hour of t are consulted, so the result is stable for a
// given timestamp.
func IsPrimeTime(t time.Time, w Window) bool {
	hour := t.Hour()
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return hour >= w.WeekendStart && hour < w.WeekendEnd
	default:
		return hour >= w.WeekdayStart && hour < w.WeekdayEnd
	}
}
