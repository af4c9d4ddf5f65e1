package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
)

// UseCase создание временной брони (pending) на диапазон дат
type UseCase struct {
	apartmentRepo ApartmentRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	metrics       Metrics
	settings      Settings
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apartmentRepo ApartmentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.HoldDuration <= 0 {
		settings.HoldDuration = domain.HoldDuration
	}
	if settings.MaxNights <= 0 {
		settings.MaxNights = domain.DefaultMaxNights
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}

	return &UseCase{
		apartmentRepo: apartmentRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		metrics:       metrics,
		settings:      settings,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute создает бронь в статусе pending, удерживающую даты на HoldDuration.
// Проверка пересечений и вставка выполняются в одной SERIALIZABLE транзакции под блокировкой строки квартиры.
// Из двух параллельных запросов на одни даты второй получает конфликт сериализации,
// txmanager повторяет его, и повтор видит уже закоммиченную бронь.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: user=%d, apartment=%d, dates=%s..%s, guests=%d",
		req.UserID, req.ApartmentID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	dates := domain.NewDateRange(req.StartDate, req.EndDate)

	if err := validateDates(dates, domain.Today(now, uc.settings.Location), uc.settings.MaxNights); err != nil {
		uc.logger.Warn("CreateHold: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Проверка и вставка в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем квартиру
		apartment, err := uc.apartmentRepo.GetByIDForUpdate(txCtx, req.ApartmentID)
		if err != nil {
			if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
				uc.logger.Warn("CreateHold: apartment id=%d not found", req.ApartmentID)
				return ErrApartmentNotFound
			}
			uc.logger.Error("CreateHold: failed to get apartment id=%d: %v", req.ApartmentID, err)
			return fmt.Errorf("%w: failed to get apartment: %w", ErrInternal, err)
		}

		if !apartment.IsAvailable {
			uc.logger.Warn("CreateHold: apartment id=%d is closed for booking", apartment.ID)
			return ErrApartmentUnavailable
		}

		// 2.2. Вместимость
		if !apartment.CanHost(req.Guests) {
			uc.logger.Warn("CreateHold: guests=%d exceed capacity=%d of apartment id=%d",
				req.Guests, apartment.MaxGuests, apartment.ID)
			return fmt.Errorf("%w: apartment hosts at most %d guests", ErrCapacityExceeded, apartment.MaxGuests)
		}

		// 2.3. Пересечения с блокирующими бронями
		conflicts, err := uc.bookingRepo.FindConflicts(txCtx, apartment.ID, dates, now, nil)
		if err != nil {
			uc.logger.Error("CreateHold: failed to find conflicts: %v", err)
			return fmt.Errorf("%w: failed to find conflicts: %w", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateHold: apartment id=%d has %d conflicting bookings", apartment.ID, len(conflicts))
			return &ConflictError{Conflicts: conflicts}
		}

		// 2.4. Стоимость считается только на сервере
		nights := dates.Nights()
		expiresAt := now.Add(uc.settings.HoldDuration)

		booking := &domain.Booking{
			UserID:      req.UserID,
			ApartmentID: apartment.ID,
			StartDate:   dates.Start,
			EndDate:     dates.End,
			Guests:      req.Guests,
			Status:      domain.StatusPending,
			ExpiresAt:   &expiresAt,
			Nights:      nights,
			TotalAmount: apartment.TotalFor(nights),
		}

		// 2.5. Сохраняем бронь
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateHold: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrDatesUnavailable) {
			uc.metrics.IncHoldConflicts()
		}
		if !isUseCaseError(err) {
			// Ошибки транзакции (begin/commit, исчерпанные повторы)
			uc.logger.Error("CreateHold: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncHoldsCreated()
	uc.logger.Info("CreateHold: created booking id=%d, expires_at=%s, total=%.2f",
		result.ID, result.ExpiresAt.Format(time.RFC3339), result.TotalAmount)

	return &Response{
		BookingID:   result.ID,
		UserID:      result.UserID,
		ApartmentID: result.ApartmentID,
		StartDate:   result.StartDate,
		EndDate:     result.EndDate,
		Guests:      result.Guests,
		Status:      string(result.Status),
		ExpiresAt:   *result.ExpiresAt,
		Nights:      result.Nights,
		TotalAmount: result.TotalAmount,
		CreatedAt:   result.CreatedAt,
	}, nil
}

func isUseCaseError(err error) bool {
	return errors.Is(err, ErrApartmentNotFound) ||
		errors.Is(err, ErrApartmentUnavailable) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrDatesUnavailable) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternal)
}
