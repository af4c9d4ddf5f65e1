package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
)

// UseCase проверка свободных дат квартиры
type UseCase struct {
	apartmentRepo ApartmentRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	sweeper       StatusSweeper
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apartmentRepo ApartmentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	sweeper StatusSweeper,
	logger Logger,
) *UseCase {
	return &UseCase{
		apartmentRepo: apartmentRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		sweeper:       sweeper,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute проверяет, свободны ли даты [StartDate, EndDate).
// Только чтение: ничего не резервирует.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	dates, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.sweeper.Sweep(ctx)
	now := uc.timeProvider.Now()

	var (
		apartment *domain.Apartment
		conflicts []domain.Conflict
	)

	// Квартира и пересечения читаются из одного снимка
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		apartment, err = uc.apartmentRepo.GetByID(txCtx, req.ApartmentID)
		if err != nil {
			if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
				uc.logger.Warn("CheckAvailability: apartment id=%d not found", req.ApartmentID)
				return ErrApartmentNotFound
			}
			uc.logger.Error("CheckAvailability: failed to get apartment id=%d: %v", req.ApartmentID, err)
			return fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
		}

		conflicts, err = uc.bookingRepo.FindConflicts(txCtx, apartment.ID, dates, now, nil)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to find conflicts for apartment id=%d: %v", apartment.ID, err)
			return fmt.Errorf("%w: failed to find conflicts: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrApartmentNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CheckAvailability: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	nights := dates.Nights()
	return &Response{
		ApartmentID:   apartment.ID,
		StartDate:     dates.Start,
		EndDate:       dates.End,
		Available:     apartment.IsAvailable && len(conflicts) == 0,
		ApartmentOpen: apartment.IsAvailable,
		Nights:        nights,
		TotalAmount:   apartment.TotalFor(nights),
		Conflicts:     conflicts,
	}, nil
}
