package create_hold

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ApartmentID <= 0 {
		return fmt.Errorf("%w: apartmentID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.Guests < domain.MinGuests {
		return fmt.Errorf("%w: guests must be at least %d", ErrInvalidInput, domain.MinGuests)
	}

	return nil
}

// validateDates проверяет диапазон дат относительно сегодняшнего дня
func validateDates(dates domain.DateRange, today time.Time, maxNights int) error {
	if !dates.IsValid() {
		return fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	// Заезд сегодня допустим, в прошлом - нет
	if dates.Start.Before(today) {
		return fmt.Errorf("%w: startDate is in the past", ErrInvalidInput)
	}

	if maxNights > 0 && dates.Nights() > maxNights {
		return fmt.Errorf("%w: stay cannot exceed %d nights", ErrInvalidInput, maxNights)
	}

	return nil
}
