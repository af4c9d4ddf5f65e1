package review_document

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents"
)

const (
	msgInvalidDocumentID  = "некорректный ID документа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "документ не найден"
	msgAlreadyReviewed    = "документ уже проверен"
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

// Handle PATCH /api/v1/admin/documents/{documentId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	documentID, err := handlers.ParseID(r, "documentId")
	if err != nil {
		h.logger.Warn("PATCH /admin/documents/{id}/review - Invalid document ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/documents/{id}/review - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReviewDocumentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Approve == nil {
		h.logger.Warn("PATCH /admin/documents/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	document, err := h.service.Review(r.Context(), documentID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/documents/{id}/review - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("PATCH /admin/documents/{id}/review - Document not found: document_id=%d", documentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, documents.ErrAlreadyReviewed):
			h.logger.Warn("PATCH /admin/documents/{id}/review - Already reviewed: document_id=%d", documentID)
			handlers.RespondConflict(w, msgAlreadyReviewed)

		case errors.Is(err, documents.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/documents/{id}/review - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /admin/documents/{id}/review - Failed to review document: document_id=%d, error=%v",
				documentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/documents/{id}/review - Document reviewed: document_id=%d, status=%s",
		document.ID, document.Status)
	handlers.RespondJSON(w, http.StatusOK, document)
}
