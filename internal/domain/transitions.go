package domain

import "errors"

// ErrUnknownStatus is returned for strings that are not booking statuses
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// Role of the actor performing an operation
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is the user performing an operation
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true if the actor has admin rights
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// manualTransitions lists transitions allowed through setStatus.
// Time-driven transitions (-> ongoing, -> expired) belong to the sweep only.
var manualTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusOngoing:   {StatusCancelled},
}

// CanTransitionManually reports whether a booking may be moved from -> to by hand
func CanTransitionManually(from, to BookingStatus) bool {
	for _, allowed := range manualTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanActorTransition checks role rules on top of the state machine:
// admins may perform any manual transition, owners may only cancel their own pending hold.
func CanActorTransition(actor Actor, booking *Booking, to BookingStatus) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.UserID == booking.UserID &&
		booking.Status == StatusPending &&
		to == StatusCancelled
}
