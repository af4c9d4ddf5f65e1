package create_apartment

import (
	"context"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

type ApartmentService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateApartmentRequest) (*models.ApartmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
