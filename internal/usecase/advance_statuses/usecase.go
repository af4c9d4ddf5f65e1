package advance_statuses

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// UseCase приводит статусы бронирований в соответствие с текущей датой
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс, в котором считается "сегодня".
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход в транзакции. Повторный вызов ничего не меняет.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	today := domain.Today(now, uc.location)

	var result domain.SweepResult
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		result, err = uc.bookingRepo.AdvanceStatuses(txCtx, today, now)
		return err
	})
	if err != nil {
		uc.logger.Error("AdvanceStatuses: failed for today=%s: %v", today.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.AddStatusTransitions(string(domain.StatusOngoing), result.Started)
	uc.metrics.AddStatusTransitions(string(domain.StatusExpired), result.Completed+result.ExpiredHolds)

	if result.Total() > 0 {
		uc.logger.Info("AdvanceStatuses: today=%s started=%d completed=%d expired_holds=%d",
			today.Format(domain.DateFormat), result.Started, result.Completed, result.ExpiredHolds)
	}

	return &Response{
		Started:      result.Started,
		Completed:    result.Completed,
		ExpiredHolds: result.ExpiredHolds,
		Today:        today,
	}, nil
}

// Sweep выполняет проход перед чтением. Ошибка только логируется:
// чтение не должно падать из-за неудачного перевода статусов.
func (uc *UseCase) Sweep(ctx context.Context) {
	if _, err := uc.Execute(ctx); err != nil {
		uc.logger.Warn("AdvanceStatuses: sweep before read skipped: %v", err)
	}
}
