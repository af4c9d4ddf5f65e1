package broker

import "time"

// Типы событий
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Event сообщение для админки
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	Message    string    `json:"message"`
	Amount     *float64  `json:"amount,omitempty"`
	Currency   string    `json:"currency,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
