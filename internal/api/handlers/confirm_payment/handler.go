package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPayment     = "платёж не прошёл проверку"
	msgPaymentMismatch    = "платёж не соответствует бронированию"
	msgGatewayError       = "платёжный шлюз недоступен, попробуйте позже"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "бронирование не ожидает оплаты"
	msgHoldExpired        = "время удержания истекло и даты уже заняты, оплата будет возвращена"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment/confirm - Invalid input: booking_id=%d, %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		// Подробности проверки подписи клиенту не раскрываем
		case errors.Is(err, confirmPayment.ErrInvalidSignature):
			h.logger.Warn("POST /bookings/{id}/payment/confirm - Invalid signature: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		case errors.Is(err, confirmPayment.ErrPaymentMismatch):
			h.logger.Warn("POST /bookings/{id}/payment/confirm - Payment mismatch: booking_id=%d, %v", bookingID, err)
			handlers.RespondBadRequest(w, msgPaymentMismatch)

		case errors.Is(err, confirmPayment.ErrGatewayError):
			h.logger.Error("POST /bookings/{id}/payment/confirm - Gateway error: booking_id=%d, %v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayError)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/payment/confirm - Invalid transition: booking_id=%d, %v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, confirmPayment.ErrHoldExpired):
			h.logger.Error("POST /bookings/{id}/payment/confirm - Paid after hold expired, refund needed: booking_id=%d, payment=%s",
				bookingID, req.PaymentID)
			handlers.RespondConflict(w, msgHoldExpired)

		default:
			h.logger.Error("POST /bookings/{id}/payment/confirm - Failed to confirm payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment/confirm - Payment confirmed: booking_id=%d, payment_id=%d, already_processed=%t",
		resp.BookingID, resp.PaymentID, resp.AlreadyProcessed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
