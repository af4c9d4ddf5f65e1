package submit_document

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service DocumentService
	logger  Logger
}

func NewHandler(service DocumentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/documents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /documents - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SubmitDocumentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /documents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	// Владелец документа всегда текущий пользователь
	req.UserID = userID

	document, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidInput):
			h.logger.Warn("POST /documents - Invalid document: user_id=%d, %v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, documents.ErrBookingNotFound):
			h.logger.Warn("POST /documents - Booking not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, documents.ErrAccessDenied):
			h.logger.Warn("POST /documents - Foreign booking: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /documents - Failed to submit document: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /documents - Document submitted: document_id=%d, user_id=%d, type=%s",
		document.ID, userID, document.Type)
	handlers.RespondJSON(w, http.StatusCreated, document)
}
