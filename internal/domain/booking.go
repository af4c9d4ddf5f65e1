package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusOngoing   BookingStatus = "ongoing"
	StatusCancelled BookingStatus = "cancelled"
	StatusExpired   BookingStatus = "expired"
)

// Booking represents a reservation of an apartment for a date range [StartDate, EndDate)
type Booking struct {
	ID          int64
	UserID      int64
	ApartmentID int64
	StartDate   time.Time
	EndDate     time.Time
	Guests      int
	Status      BookingStatus
	ExpiresAt   *time.Time // hold deadline, set only while pending
	TotalAmount float64
	Nights      int

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booked date range
func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// IsHoldExpired returns true if the booking is a pending hold whose window has passed.
// A hold without expires_at is considered fresh for HoldDuration after creation.
// That fallback is fixed: holds created by the service always carry expires_at,
// whatever hold duration is configured, so only rows written elsewhere rely on it.
func (b *Booking) IsHoldExpired(now time.Time) bool {
	if b.Status != StatusPending {
		return false
	}
	if b.ExpiresAt != nil {
		return !b.ExpiresAt.After(now)
	}
	return !b.CreatedAt.Add(HoldDuration).After(now)
}

// IsBlocking returns true if the booking counts against availability at the given moment
func (b *Booking) IsBlocking(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed, StatusOngoing:
		return true
	case StatusPending:
		return !b.IsHoldExpired(now)
	default:
		return false
	}
}

// IsLapsedHold returns true if the booking was a hold that ran out before payment:
// either still pending past its deadline or already expired by the sweep while the stay is in the future.
// Stays expire from confirmed/ongoing only once end_date has passed, so an expired booking
// whose end_date is after today can only be a lapsed hold.
func (b *Booking) IsLapsedHold(now, today time.Time) bool {
	switch b.Status {
	case StatusPending:
		return b.IsHoldExpired(now)
	case StatusExpired:
		return b.EndDate.After(today)
	default:
		return false
	}
}

// IsFinal returns true if no further transitions are possible
func (b *Booking) IsFinal() bool {
	return b.Status == StatusCancelled || b.Status == StatusExpired
}

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOngoing, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// ParseBookingStatus converts a string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// Conflict is an existing booking that overlaps a requested range
type Conflict struct {
	BookingID int64
	StartDate time.Time
	EndDate   time.Time
	Status    BookingStatus
}

// BookingsFilter filter for booking listings
type BookingsFilter struct {
	UserID      *int64
	ApartmentID *int64
	Status      *BookingStatus
	From        *time.Time // bookings ending after From
	To          *time.Time // bookings starting before To
}

// SweepResult counts bookings moved by one status sweep
type SweepResult struct {
	Started      int64 // confirmed -> ongoing
	Completed    int64 // confirmed/ongoing -> expired
	ExpiredHolds int64 // pending -> expired
}

// Total returns the number of rows touched by the sweep
func (r SweepResult) Total() int64 {
	return r.Started + r.Completed + r.ExpiredHolds
}
