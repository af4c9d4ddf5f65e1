package list_apartments

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/apartments
// Query params: onlyAvailable (опционально, true - только открытые для бронирования)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := false
	if raw := r.URL.Query().Get("onlyAvailable"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /apartments - Invalid onlyAvailable: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		onlyAvailable = v
	}

	result, err := h.service.List(r.Context(), onlyAvailable)
	if err != nil {
		h.logger.Error("GET /apartments - Failed to list apartments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /apartments - Apartments retrieved successfully: count=%d", len(result.Apartments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
