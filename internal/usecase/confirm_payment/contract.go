package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/integrations/paymentgateway"
)

// Gateway интерфейс платёжного шлюза
type Gateway interface {
	VerifySignature(orderID, paymentID, signature string) bool
	FetchPayment(ctx context.Context, paymentID string) (*paymentgateway.Payment, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	FindConflicts(ctx context.Context, apartmentID int64, dates domain.DateRange, now time.Time, excludeID *int64) ([]domain.Conflict, error)
	Confirm(ctx context.Context, id int64, from domain.BookingStatus) error
}

// ApartmentRepository интерфейс репозитория квартир
type ApartmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Apartment, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*domain.Payment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомляет администраторов о поступившей оплате
type Notifier interface {
	NotifyPaymentReceived(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error
}

// Metrics доменные счётчики
type Metrics interface {
	IncPaymentsConfirmed(method string)
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
