package get_apartment

import (
	"context"

	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

type ApartmentService interface {
	GetByID(ctx context.Context, id int64) (*models.ApartmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
