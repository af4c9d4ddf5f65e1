package set_booking_status

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// validateRequest валидирует запрос и возвращает целевой статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Actor.UserID <= 0 {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownStatus) {
			return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
		}
		return "", err
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxReasonLength {
		return "", fmt.Errorf("%w: reason cannot exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if status != domain.StatusCancelled && (req.Refund || req.Reason != nil) {
		return "", fmt.Errorf("%w: reason and refund apply to cancellation only", ErrInvalidInput)
	}

	return status, nil
}
