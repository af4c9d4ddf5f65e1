package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/check_availability"
)

const (
	msgApartmentNotFound = "квартира не найдена"
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

// Handle GET /api/v1/apartments/{apartmentId}/availability
// Query params: startDate, endDate (YYYY-MM-DD, дата выезда не входит в проживание)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /apartments/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkAvailability.ErrApartmentNotFound):
			h.logger.Warn("GET /apartments/{id}/availability - Apartment not found: apartment_id=%d", req.ApartmentID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		default:
			h.logger.Error("GET /apartments/{id}/availability - Failed to check availability: apartment_id=%d, error=%v",
				req.ApartmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /apartments/{id}/availability - apartment_id=%d, available=%t, conflicts=%d",
		resp.ApartmentID, resp.Available, len(resp.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
