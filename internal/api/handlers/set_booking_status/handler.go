package set_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	setBookingStatus "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/set_booking_status"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgVerificationRequired = "требуется одобренный документ гостя"
	msgHoldExpired          = "время удержания истекло и даты уже заняты"
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, setBookingStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, setBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, setBookingStatus.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, setBookingStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - %v", err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, setBookingStatus.ErrVerificationRequired):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Verification required: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgVerificationRequired)

		case errors.Is(err, setBookingStatus.ErrHoldExpired):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Hold expired: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgHoldExpired)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - Failed to change status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Status changed: booking_id=%d, %s -> %s, refunded=%t",
		resp.BookingID, resp.PreviousStatus, resp.Status, resp.Refunded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
