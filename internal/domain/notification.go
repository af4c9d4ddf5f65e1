package domain

import "time"

// NotificationKind type of back-office notification
type NotificationKind string

const (
	NotificationPaymentReceived  NotificationKind = "payment_received"
	NotificationBookingCancelled NotificationKind = "booking_cancelled"
)

// Notification is a message for the admin back-office
type Notification struct {
	ID        int64
	Recipient Role
	Kind      NotificationKind
	BookingID *int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
