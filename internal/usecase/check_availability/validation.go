package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.DateRange, error) {
	if req.ApartmentID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: apartmentID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return domain.DateRange{}, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	dates := domain.NewDateRange(req.StartDate, req.EndDate)
	if !dates.IsValid() {
		return domain.DateRange{}, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	return dates, nil
}
