package confirm_payment

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.OrderID) == "" {
		return fmt.Errorf("%w: orderId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.PaymentID) == "" {
		return fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Signature) == "" {
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}

	return nil
}
