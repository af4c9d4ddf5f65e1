package apartments

import (
	"context"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	Create(ctx context.Context, apartment *domain.Apartment) (*domain.Apartment, error)
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
	List(ctx context.Context, onlyAvailable bool) ([]*domain.Apartment, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
