package documents

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// DocumentRepository интерфейс репозитория документов
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	Review(ctx context.Context, id int64, status domain.DocumentStatus, reviewerID int64, comment *string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
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
