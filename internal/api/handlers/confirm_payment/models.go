package confirm_payment

import (
	confirmPayment "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model (данные, которые шлюз вернул клиенту после оплаты)
type ConfirmPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	BookingID        int64   `json:"bookingId"`
	Success          bool    `json:"success"`
	Status           string  `json:"status"`
	PaymentID        int64   `json:"paymentId"`
	Method           string  `json:"method"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	AlreadyProcessed bool    `json:"alreadyProcessed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest(bookingID int64) *confirmPayment.Request {
	return &confirmPayment.Request{
		BookingID: bookingID,
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		BookingID:        resp.BookingID,
		Success:          resp.Success,
		Status:           resp.Status,
		PaymentID:        resp.PaymentID,
		Method:           resp.Method,
		Amount:           resp.Amount,
		Currency:         resp.Currency,
		AlreadyProcessed: resp.AlreadyProcessed,
	}
}
