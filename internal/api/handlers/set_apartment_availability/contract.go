package set_apartment_availability

import (
	"context"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

type ApartmentService interface {
	SetAvailability(ctx context.Context, actor domain.Actor, id int64, available bool) (*models.ApartmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
