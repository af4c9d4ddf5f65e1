package create_apartment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/admin/apartments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/apartments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateApartmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/apartments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	apartment, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, apartments.ErrInvalidInput):
			h.logger.Warn("POST /admin/apartments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, apartments.ErrAccessDenied):
			h.logger.Warn("POST /admin/apartments - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /admin/apartments - Failed to create apartment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/apartments - Apartment created: apartment_id=%d", apartment.ID)
	handlers.RespondJSON(w, http.StatusCreated, apartment)
}
