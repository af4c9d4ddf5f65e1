package set_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/payment"
)

// notifyTimeout ограничение на уведомление администраторов после коммита
const notifyTimeout = 10 * time.Second

// UseCase ручная смена статуса брони (админка и отмена владельцем)
type UseCase struct {
	bookingRepo   BookingRepository
	apartmentRepo ApartmentRepository
	documentRepo  DocumentRepository
	paymentRepo   PaymentRepository
	txManager     TransactionManager
	sweeper       StatusSweeper
	notifier      Notifier
	location      *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// notifier может быть nil - тогда администраторы не уведомляются.
// location определяет границу суток для проверки просроченных удержаний.
func NewUseCase(
	bookingRepo BookingRepository,
	apartmentRepo ApartmentRepository,
	documentRepo DocumentRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	sweeper StatusSweeper,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		apartmentRepo: apartmentRepo,
		documentRepo:  documentRepo,
		paymentRepo:   paymentRepo,
		txManager:     txManager,
		sweeper:       sweeper,
		notifier:      notifier,
		location:      location,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute переводит бронь в новый статус по таблице ручных переходов.
// Переходы по времени (ongoing, expired) выполняет только advance_statuses.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetBookingStatus: booking=%d, status=%s, actor=%d (%s), refund=%t",
		req.BookingID, req.Status, req.Actor.UserID, req.Actor.Role, req.Refund)

	// 1. Валидация входных данных
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SetBookingStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Статусы должны соответствовать дате до проверки перехода
	uc.sweeper.Sweep(ctx)

	now := uc.timeProvider.Now()
	today := domain.Today(now, uc.location)

	var (
		booking  *domain.Booking
		previous domain.BookingStatus
		refunded bool
	)

	// 3. Переход в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		refunded = false

		// 3.1. Блокируем бронь
		b, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("SetBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("SetBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 3.2. Чужие брони для пользователя не существуют
		if !req.Actor.IsAdmin() && req.Actor.UserID != b.UserID {
			uc.logger.Warn("SetBookingStatus: user=%d tried to change booking id=%d of user=%d",
				req.Actor.UserID, b.ID, b.UserID)
			return ErrAccessDenied
		}

		// 3.3. Таблица переходов и права роли.
		// Удержание, которое sweep уже перевёл в expired до начала проживания,
		// администратор может подтвердить так же, как просроченный pending.
		lapsed := target == domain.StatusConfirmed && req.Actor.IsAdmin() &&
			b.Status == domain.StatusExpired && b.IsLapsedHold(now, today)
		if !lapsed && !domain.CanTransitionManually(b.Status, target) {
			uc.logger.Warn("SetBookingStatus: transition %s -> %s is not allowed for booking id=%d", b.Status, target, b.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
		}
		if !domain.CanActorTransition(req.Actor, b, target) {
			uc.logger.Warn("SetBookingStatus: user=%d may not move booking id=%d to %s", req.Actor.UserID, b.ID, target)
			return ErrAccessDenied
		}

		previous = b.Status

		switch target {
		case domain.StatusConfirmed:
			err = uc.confirm(txCtx, b, now)
		case domain.StatusCancelled:
			refunded, err = uc.cancel(txCtx, b, req.Reason, req.Refund)
		default:
			err = fmt.Errorf("%w: %s", ErrInvalidTransition, target)
		}
		if err != nil {
			return err
		}

		b.Status = target
		b.ExpiresAt = nil
		booking = b
		return nil
	})

	if err != nil {
		if !isUseCaseError(err) {
			uc.logger.Error("SetBookingStatus: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("SetBookingStatus: booking=%d moved %s -> %s", booking.ID, previous, booking.Status)

	// 4. Уведомление об отмене после коммита
	if booking.Status == domain.StatusCancelled {
		uc.notifyCancelled(ctx, booking, refunded)
	}

	return &Response{
		BookingID:      booking.ID,
		PreviousStatus: string(previous),
		Status:         string(booking.Status),
		Refunded:       refunded,
	}, nil
}

// confirm принудительно подтверждает pending бронь или просроченное удержание
func (uc *UseCase) confirm(ctx context.Context, b *domain.Booking, now time.Time) error {
	apartment, err := uc.apartmentRepo.GetByIDForUpdate(ctx, b.ApartmentID)
	if err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			return fmt.Errorf("%w: apartment id=%d is gone", ErrInternal, b.ApartmentID)
		}
		uc.logger.Error("SetBookingStatus: failed to lock apartment id=%d: %v", b.ApartmentID, err)
		return fmt.Errorf("%w: failed to lock apartment: %w", ErrInternal, err)
	}

	if apartment.RequiresVerification {
		approved, err := uc.documentRepo.HasApproved(ctx, b.UserID, b.ID)
		if err != nil {
			uc.logger.Error("SetBookingStatus: failed to check documents of user=%d: %v", b.UserID, err)
			return fmt.Errorf("%w: failed to check documents: %w", ErrInternal, err)
		}
		if !approved {
			uc.logger.Warn("SetBookingStatus: user=%d has no approved document for booking id=%d", b.UserID, b.ID)
			return ErrVerificationRequired
		}
	}

	if b.Status == domain.StatusExpired || b.IsHoldExpired(now) {
		conflicts, err := uc.bookingRepo.FindConflicts(ctx, b.ApartmentID, b.Range(), now, &b.ID)
		if err != nil {
			uc.logger.Error("SetBookingStatus: failed to find conflicts: %v", err)
			return fmt.Errorf("%w: failed to find conflicts: %w", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("SetBookingStatus: hold of booking id=%d expired, dates taken by booking id=%d",
				b.ID, conflicts[0].BookingID)
			return ErrHoldExpired
		}
	}

	if err := uc.bookingRepo.Confirm(ctx, b.ID, b.Status); err != nil {
		return uc.mapUpdateError("confirm", b.ID, err)
	}

	return nil
}

// cancel отменяет бронь и при необходимости возвращает оплату
func (uc *UseCase) cancel(ctx context.Context, b *domain.Booking, reason *string, refund bool) (bool, error) {
	if err := uc.bookingRepo.Cancel(ctx, b.ID, b.Status, reason); err != nil {
		return false, uc.mapUpdateError("cancel", b.ID, err)
	}
	b.CancellationReason = reason

	if !refund {
		return false, nil
	}

	payment, err := uc.paymentRepo.GetPaidByBookingID(ctx, b.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("SetBookingStatus: booking id=%d has no paid payment to refund", b.ID)
			return false, fmt.Errorf("%w: booking has no paid payment", ErrInvalidInput)
		}
		uc.logger.Error("SetBookingStatus: failed to get payment of booking id=%d: %v", b.ID, err)
		return false, fmt.Errorf("%w: failed to get payment: %w", ErrInternal, err)
	}

	if err := uc.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentPaid, domain.PaymentRefunded); err != nil {
		uc.logger.Error("SetBookingStatus: failed to refund payment id=%d: %v", payment.ID, err)
		return false, fmt.Errorf("%w: failed to refund payment: %w", ErrInternal, err)
	}

	return true, nil
}

func (uc *UseCase) mapUpdateError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrStatusChanged):
		return fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
	case errors.Is(err, bookingRepo.ErrOverlap):
		uc.logger.Warn("SetBookingStatus: overlap rejected by database for booking id=%d", id)
		return ErrHoldExpired
	}
	uc.logger.Error("SetBookingStatus: failed to %s booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: failed to %s booking: %w", ErrInternal, op, err)
}

func (uc *UseCase) notifyCancelled(ctx context.Context, booking *domain.Booking, refunded bool) {
	if uc.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	go func() {
		defer cancel()
		if err := uc.notifier.NotifyBookingCancelled(notifyCtx, booking, refunded); err != nil {
			uc.logger.Warn("SetBookingStatus: failed to notify admins about booking=%d: %v", booking.ID, err)
		}
	}()
}

func isUseCaseError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrVerificationRequired) ||
		errors.Is(err, ErrHoldExpired) ||
		errors.Is(err, ErrInternal)
}
