package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgNoActor          = "отсутствует ID пользователя"
	msgNotOwner         = "бронирование принадлежит другому пользователю"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Статус удержания меняется со временем, поэтому ответ не кэшируется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - no actor in context")
		handlers.RespondUnauthorized(w, msgNoActor)
		return
	}

	bookingID, err := handlers.ParseID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, actor)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - booking_id=%d not found", bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - user_id=%d (role=%s) is not the owner of booking_id=%d",
			actor.UserID, actor.Role, bookingID)
		handlers.RespondForbidden(w, msgNotOwner)
		return
	default:
		h.logger.Error("GET /bookings/{id} - booking_id=%d: %v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id} - booking_id=%d status=%s served to user_id=%d",
		bookingID, booking.Status, actor.UserID)
	w.Header().Set("Cache-Control", "no-store")
	handlers.RespondJSON(w, http.StatusOK, booking)
}
