package review_document

import (
	"context"

	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents/models"
)

type DocumentService interface {
	Review(ctx context.Context, documentID int64, req *models.ReviewDocumentRequest) (*models.DocumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
