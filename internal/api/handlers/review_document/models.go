package review_document

import (
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents/models"
)

// ReviewDocumentRequest HTTP request model
type ReviewDocumentRequest struct {
	Approve *bool   `json:"approve"` // обязательное поле
	Comment *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReviewDocumentRequest) ToServiceRequest(actor domain.Actor) *models.ReviewDocumentRequest {
	return &models.ReviewDocumentRequest{
		Actor:   actor,
		Approve: *r.Approve,
		Comment: r.Comment,
	}
}
