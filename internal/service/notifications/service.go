package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/integrations/broker"
)

// Service уведомления администраторов: запись в таблицу notifications
// и, если брокер настроен, событие в очередь админки
type Service struct {
	repo         NotificationRepository
	publisher    Publisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений.
// publisher может быть nil - тогда события не публикуются.
func NewService(repo NotificationRepository, publisher Publisher, logger Logger) *Service {
	return &Service{
		repo:         repo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// NotifyPaymentReceived сообщает об оплаченной брони
func (s *Service) NotifyPaymentReceived(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	message := fmt.Sprintf("Получена оплата %.2f %s (%s) за бронь #%d, %s - %s",
		payment.Amount, payment.Currency, payment.Method, booking.ID,
		booking.StartDate.Format(domain.DateFormat), booking.EndDate.Format(domain.DateFormat))

	amount := payment.Amount
	return s.notify(ctx, domain.NotificationPaymentReceived, booking.ID, message, broker.Event{
		Type:     broker.EventBookingConfirmed,
		Amount:   &amount,
		Currency: payment.Currency,
	})
}

// NotifyBookingCancelled сообщает об отмене брони
func (s *Service) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, refunded bool) error {
	message := fmt.Sprintf("Бронь #%d отменена", booking.ID)
	if booking.CancellationReason != nil && *booking.CancellationReason != "" {
		message += ": " + *booking.CancellationReason
	}
	if refunded {
		message += " (оплата возвращена)"
	}

	return s.notify(ctx, domain.NotificationBookingCancelled, booking.ID, message, broker.Event{
		Type: broker.EventBookingCancelled,
	})
}

// notify пишет уведомление и публикует событие. Ошибка одного канала не мешает другому.
func (s *Service) notify(ctx context.Context, kind domain.NotificationKind, bookingID int64, message string, event broker.Event) error {
	var errs []error

	_, err := s.repo.Create(ctx, &domain.Notification{
		Recipient: domain.RoleAdmin,
		Kind:      kind,
		BookingID: &bookingID,
		Message:   message,
	})
	if err != nil {
		s.logger.Error("Notify: failed to store %s notification for booking=%d: %v", kind, bookingID, err)
		errs = append(errs, fmt.Errorf("%w: %v", ErrStore, err))
	}

	if s.publisher != nil {
		event.ID = uuid.NewString()
		event.BookingID = bookingID
		event.Message = message
		event.OccurredAt = s.timeProvider.Now().UTC()

		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Notify: failed to publish %s for booking=%d: %v", event.Type, bookingID, err)
			errs = append(errs, fmt.Errorf("%w: %v", ErrPublish, err))
		}
	}

	if len(errs) == 0 {
		s.logger.Info("Notify: admins notified about %s, booking=%d", kind, bookingID)
	}

	return errors.Join(errs...)
}
