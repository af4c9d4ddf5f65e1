package set_apartment_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments"
)

const (
	msgInvalidApartmentID = "некорректный ID квартиры"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "квартира не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ApartmentService
	logger  Logger
}

func NewHandler(service ApartmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/apartments/{apartmentId}/availability
// Закрытие квартиры не отменяет существующие брони, только запрещает новые.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := handlers.ParseID(r, "apartmentId")
	if err != nil {
		h.logger.Warn("PATCH /admin/apartments/{id}/availability - Invalid apartment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/apartments/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.IsAvailable == nil {
		h.logger.Warn("PATCH /admin/apartments/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	apartment, err := h.service.SetAvailability(r.Context(), actor, apartmentID, *req.IsAvailable)
	if err != nil {
		switch {
		case errors.Is(err, apartments.ErrApartmentNotFound):
			h.logger.Warn("PATCH /admin/apartments/{id}/availability - Apartment not found: apartment_id=%d", apartmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, apartments.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/apartments/{id}/availability - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /admin/apartments/{id}/availability - Failed to update apartment: apartment_id=%d, error=%v",
				apartmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/apartments/{id}/availability - apartment_id=%d, is_available=%t",
		apartment.ID, apartment.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, apartment)
}
