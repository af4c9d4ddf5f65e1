package set_booking_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	FindConflicts(ctx context.Context, apartmentID int64, dates domain.DateRange, now time.Time, excludeID *int64) ([]domain.Conflict, error)
	Confirm(ctx context.Context, id int64, from domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason *string) error
}

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Apartment, error)
}

// DocumentRepository интерфейс репозитория документов
type DocumentRepository interface {
	HasApproved(ctx context.Context, userID, bookingID int64) (bool, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetPaidByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// StatusSweeper приводит статусы в соответствие с датой перед изменением
type StatusSweeper interface {
	Sweep(ctx context.Context)
}

// Notifier уведомляет администраторов об отмене
type Notifier interface {
	NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, refunded bool) error
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
