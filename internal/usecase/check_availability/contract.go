package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindConflicts(ctx context.Context, apartmentID int64, dates domain.DateRange, now time.Time, excludeID *int64) ([]domain.Conflict, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// StatusSweeper переводит статусы перед чтением
type StatusSweeper interface {
	Sweep(ctx context.Context)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
