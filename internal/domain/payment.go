package domain

import "time"

// PaymentStatus represents the status of a payment record
type PaymentStatus string

const (
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is a payment recorded against a booking after gateway verification
type Payment struct {
	ID                int64
	BookingID         int64
	Amount            float64
	Currency          string
	Method            string
	ExternalOrderID   string
	ExternalPaymentID string
	Status            PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid returns true if the payment actively backs a booking
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentPaid
}
