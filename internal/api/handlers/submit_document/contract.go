package submit_document

import (
	"context"

	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents/models"
)

type DocumentService interface {
	Submit(ctx context.Context, req *models.SubmitDocumentRequest) (*models.DocumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
