package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/integrations/paymentgateway"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/payment"
)

// notifyTimeout ограничение на уведомление администраторов после коммита
const notifyTimeout = 10 * time.Second

// moneyEpsilon допуск при сравнении сумм после перевода из копеек
const moneyEpsilon = 0.005

// UseCase сверка платежа шлюза с бронью и её подтверждение
type UseCase struct {
	gateway       Gateway
	bookingRepo   BookingRepository
	apartmentRepo ApartmentRepository
	paymentRepo   PaymentRepository
	txManager     TransactionManager
	notifier      Notifier
	metrics       Metrics
	settings      Settings
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// notifier может быть nil - тогда администраторы не уведомляются.
func NewUseCase(
	gateway Gateway,
	bookingRepo BookingRepository,
	apartmentRepo ApartmentRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	settings.Currency = strings.ToUpper(strings.TrimSpace(settings.Currency))
	if settings.Currency == "" {
		settings.Currency = domain.DefaultCurrency
	}
	return &UseCase{
		gateway:       gateway,
		bookingRepo:   bookingRepo,
		apartmentRepo: apartmentRepo,
		paymentRepo:   paymentRepo,
		txManager:     txManager,
		notifier:      notifier,
		metrics:       metrics,
		settings:      settings,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute проверяет колбэк шлюза, получает платёж из API шлюза и в одной транзакции
// подтверждает бронь и записывает оплату. Повторный колбэк того же платежа возвращает
// прежний результат без записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, order=%s, payment=%s", req.BookingID, req.OrderID, req.PaymentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Подпись. Детали расхождения наружу не отдаём.
	if !uc.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		uc.logger.Warn("ConfirmPayment: invalid signature for booking=%d, payment=%s", req.BookingID, req.PaymentID)
		return nil, ErrInvalidSignature
	}

	// 3. Сумма и статус берутся только из API шлюза
	gwPayment, err := uc.gateway.FetchPayment(ctx, req.PaymentID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to fetch payment %s: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayError, err)
	}

	if gwPayment.OrderID != req.OrderID {
		uc.logger.Warn("ConfirmPayment: payment %s belongs to order %s, callback order %s",
			req.PaymentID, gwPayment.OrderID, req.OrderID)
		return nil, fmt.Errorf("%w: order id differs", ErrPaymentMismatch)
	}

	if gwPayment.CurrencyCode() != uc.settings.Currency {
		uc.logger.Warn("ConfirmPayment: payment %s is in %s, bookings are priced in %s",
			req.PaymentID, gwPayment.CurrencyCode(), uc.settings.Currency)
		return nil, fmt.Errorf("%w: currency %s", ErrPaymentMismatch, gwPayment.CurrencyCode())
	}

	// Платёж должен быть создан для этой брони, иначе чужой оплатой можно подтвердить любую бронь
	if ref, ok := gwPayment.BookingRef(); !ok || ref != req.BookingID {
		uc.logger.Warn("ConfirmPayment: payment %s references booking %q, callback booking=%d",
			req.PaymentID, gwPayment.Notes[paymentgateway.NoteBookingID], req.BookingID)
		return nil, fmt.Errorf("%w: payment is not issued for booking %d", ErrPaymentMismatch, req.BookingID)
	}

	if !gwPayment.IsSuccessful() {
		uc.logger.Warn("ConfirmPayment: payment %s has status %s", req.PaymentID, gwPayment.Status)
		return nil, fmt.Errorf("%w: payment status is %s", ErrPaymentMismatch, gwPayment.Status)
	}

	now := uc.timeProvider.Now()
	today := domain.Today(now, uc.settings.Location)

	var (
		confirmed *domain.Booking
		payment   *domain.Payment
		replayed  bool
	)

	// 4. Подтверждение брони и запись платежа в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		replayed = false

		// 4.1. Блокируем бронь
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 4.2. Повторный колбэк того же платежа
		existing, err := uc.paymentRepo.GetByExternalPaymentID(txCtx, req.PaymentID)
		switch {
		case err == nil:
			if existing.BookingID != booking.ID || !existing.IsPaid() {
				uc.logger.Warn("ConfirmPayment: payment %s already recorded for booking=%d with status %s",
					req.PaymentID, existing.BookingID, existing.Status)
				return fmt.Errorf("%w: payment already recorded", ErrPaymentMismatch)
			}
			confirmed, payment, replayed = booking, existing, true
			return nil
		case !errors.Is(err, paymentRepo.ErrPaymentNotFound):
			uc.logger.Error("ConfirmPayment: failed to look up payment %s: %v", req.PaymentID, err)
			return fmt.Errorf("%w: failed to look up payment: %w", ErrInternal, err)
		}

		// 4.3. Статус брони
		lapsed := booking.IsLapsedHold(now, today)
		if booking.Status != domain.StatusPending && !lapsed {
			uc.logger.Warn("ConfirmPayment: booking id=%d has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
		}

		// 4.4. Сумма шлюза против суммы брони
		amount := gwPayment.AmountDecimal()
		if amount+moneyEpsilon < booking.TotalAmount {
			uc.logger.Warn("ConfirmPayment: payment %s amount %.2f is less than booking total %.2f",
				req.PaymentID, amount, booking.TotalAmount)
			return fmt.Errorf("%w: paid %.2f of %.2f", ErrPaymentMismatch, amount, booking.TotalAmount)
		}
		if amount > booking.TotalAmount+moneyEpsilon {
			uc.logger.Warn("ConfirmPayment: payment %s amount %.2f exceeds booking total %.2f",
				req.PaymentID, amount, booking.TotalAmount)
		}

		// 4.5. Удержание истекло: даты могли занять, перепроверяем под блокировкой квартиры
		if lapsed {
			if err := uc.recheckDates(txCtx, booking, now); err != nil {
				return err
			}
		}

		// 4.6. Подтверждаем бронь
		if err := uc.bookingRepo.Confirm(txCtx, booking.ID, booking.Status); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusChanged):
				return fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
			case errors.Is(err, bookingRepo.ErrOverlap):
				uc.logger.Warn("ConfirmPayment: overlap rejected by database for booking id=%d", booking.ID)
				return ErrHoldExpired
			}
			uc.logger.Error("ConfirmPayment: failed to confirm booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to confirm booking: %w", ErrInternal, err)
		}

		// 4.7. Записываем платёж
		created, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID:         booking.ID,
			Amount:            amount,
			Currency:          gwPayment.CurrencyCode(),
			Method:            gwPayment.Method,
			ExternalOrderID:   gwPayment.OrderID,
			ExternalPaymentID: gwPayment.ID,
			Status:            domain.PaymentPaid,
		})
		if err != nil {
			if errors.Is(err, paymentRepo.ErrDuplicatePayment) {
				uc.logger.Warn("ConfirmPayment: booking id=%d already has a paid payment", booking.ID)
				return fmt.Errorf("%w: booking already paid", ErrPaymentMismatch)
			}
			uc.logger.Error("ConfirmPayment: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %w", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.ExpiresAt = nil
		confirmed, payment = booking, created
		return nil
	})

	if err != nil {
		if !isUseCaseError(err) {
			uc.logger.Error("ConfirmPayment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	if replayed {
		uc.logger.Info("ConfirmPayment: payment %s already applied to booking=%d", req.PaymentID, confirmed.ID)
	} else {
		uc.metrics.IncPaymentsConfirmed(payment.Method)
		uc.logger.Info("ConfirmPayment: booking=%d confirmed, payment id=%d, amount=%.2f %s",
			confirmed.ID, payment.ID, payment.Amount, payment.Currency)

		// 5. Уведомление после коммита, ошибки только логируются
		uc.notify(ctx, confirmed, payment)
	}

	return &Response{
		BookingID:        confirmed.ID,
		Success:          true,
		Status:           string(confirmed.Status),
		PaymentID:        payment.ID,
		Method:           payment.Method,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		AlreadyProcessed: replayed,
	}, nil
}

// recheckDates проверяет, что даты истёкшего удержания никто не занял
func (uc *UseCase) recheckDates(ctx context.Context, booking *domain.Booking, now time.Time) error {
	if _, err := uc.apartmentRepo.GetByIDForUpdate(ctx, booking.ApartmentID); err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			return fmt.Errorf("%w: apartment id=%d is gone", ErrInternal, booking.ApartmentID)
		}
		uc.logger.Error("ConfirmPayment: failed to lock apartment id=%d: %v", booking.ApartmentID, err)
		return fmt.Errorf("%w: failed to lock apartment: %w", ErrInternal, err)
	}

	conflicts, err := uc.bookingRepo.FindConflicts(ctx, booking.ApartmentID, booking.Range(), now, &booking.ID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to find conflicts: %v", err)
		return fmt.Errorf("%w: failed to find conflicts: %w", ErrInternal, err)
	}

	if len(conflicts) > 0 {
		uc.logger.Warn("ConfirmPayment: hold of booking id=%d expired, dates taken by booking id=%d",
			booking.ID, conflicts[0].BookingID)
		return ErrHoldExpired
	}

	return nil
}

func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking, payment *domain.Payment) {
	if uc.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	go func() {
		defer cancel()
		if err := uc.notifier.NotifyPaymentReceived(notifyCtx, booking, payment); err != nil {
			uc.logger.Warn("ConfirmPayment: failed to notify admins about booking=%d: %v", booking.ID, err)
		}
	}()
}

func isUseCaseError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrHoldExpired) ||
		errors.Is(err, ErrPaymentMismatch) ||
		errors.Is(err, ErrInternal)
}
