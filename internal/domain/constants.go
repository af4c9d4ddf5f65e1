package domain

import "time"

// Booking rules
const (
	HoldDuration     = 30 * time.Minute
	MinGuests        = 1
	MaxGuestsLimit   = 50
	DefaultMaxNights = 90
	MaxReasonLength  = 500
	DefaultCurrency  = "INR" // apartment prices and payments share one currency
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses that may block availability.
// Pending rows additionally need a live hold, see Booking.IsBlocking.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusOngoing,
}
