package set_booking_status

import (
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	setBookingStatus "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/set_booking_status"
)

// SetStatusRequest HTTP request model
type SetStatusRequest struct {
	Status string  `json:"status"` // confirmed | cancelled
	Reason *string `json:"reason,omitempty"`
	Refund bool    `json:"refund,omitempty"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	BookingID      int64  `json:"bookingId"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	Refunded       bool   `json:"refunded"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetStatusRequest) ToUseCaseRequest(bookingID int64, actor domain.Actor) *setBookingStatus.Request {
	return &setBookingStatus.Request{
		BookingID: bookingID,
		Status:    r.Status,
		Reason:    r.Reason,
		Refund:    r.Refund,
		Actor:     actor,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setBookingStatus.Response) *StatusResponse {
	return &StatusResponse{
		BookingID:      resp.BookingID,
		PreviousStatus: resp.PreviousStatus,
		Status:         resp.Status,
		Refunded:       resp.Refunded,
	}
}
