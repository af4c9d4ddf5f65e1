package set_booking_status

import "github.com/m04kA/SMC-ApartmentBooking/internal/domain"

// Request запрос на ручную смену статуса
type Request struct {
	BookingID int64
	Status    string
	Reason    *string // причина отмены
	Refund    bool    // вернуть оплату при отмене
	Actor     domain.Actor
}

// Response результат смены статуса
type Response struct {
	BookingID      int64
	PreviousStatus string
	Status         string
	Refunded       bool
}
