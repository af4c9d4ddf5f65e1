package cancel_booking

import (
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	setBookingStatus "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/set_booking_status"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64, actor domain.Actor) *setBookingStatus.Request {
	return &setBookingStatus.Request{
		BookingID: bookingID,
		Status:    string(domain.StatusCancelled),
		Reason:    r.CancellationReason,
		Actor:     actor,
	}
}
