package create_hold

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

var (
	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("create_hold: apartment not found")

	// ErrApartmentUnavailable возвращается, когда квартира закрыта для бронирования
	ErrApartmentUnavailable = errors.New("create_hold: apartment is not available for booking")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем вмещает квартира
	ErrCapacityExceeded = errors.New("create_hold: guests exceed apartment capacity")

	// ErrDatesUnavailable возвращается, когда даты пересекаются с другой бронью
	ErrDatesUnavailable = errors.New("create_hold: dates are not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)

// ConflictError ErrDatesUnavailable вместе с пересекающимися бронями
type ConflictError struct {
	Conflicts []domain.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting bookings", ErrDatesUnavailable, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrDatesUnavailable
}
