package get_apartment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments"
)

const (
	msgInvalidApartmentID = "некорректный ID квартиры"
	msgNotFound           = "квартира не найдена"
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

// Handle GET /api/v1/apartments/{apartmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := handlers.ParseID(r, "apartmentId")
	if err != nil {
		h.logger.Warn("GET /apartments/{id} - Invalid apartment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return
	}

	apartment, err := h.service.GetByID(r.Context(), apartmentID)
	if err != nil {
		if errors.Is(err, apartments.ErrApartmentNotFound) {
			h.logger.Warn("GET /apartments/{id} - Apartment not found: apartment_id=%d", apartmentID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /apartments/{id} - Failed to get apartment: apartment_id=%d, error=%v", apartmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, apartment)
}
