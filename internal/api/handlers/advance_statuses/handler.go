package advance_statuses

import (
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
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

// Handle POST /api/v1/admin/statuses/advance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/statuses/advance - Failed to advance statuses: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/statuses/advance - started=%d, completed=%d, expired_holds=%d",
		resp.Started, resp.Completed, resp.ExpiredHolds)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
