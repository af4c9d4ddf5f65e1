package list_apartments

import (
	"context"

	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

type ApartmentService interface {
	List(ctx context.Context, onlyAvailable bool) (*models.ApartmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
