package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/bookings/models"
)

// Service сервис для чтения бронирований.
// Перед каждым чтением выполняется проход advance_statuses, поэтому статусы всегда актуальны.
type Service struct {
	bookingRepo BookingRepository
	sweeper     StatusSweeper
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	sweeper StatusSweeper,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		sweeper:     sweeper,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои брони, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	s.sweeper.Sweep(ctx)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if !req.Actor.IsAdmin() && req.Actor.UserID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d tried to read bookings of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{UserID: &req.UserID}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	s.sweeper.Sweep(ctx)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBookings список бронирований для админки с фильтрацией
// по квартире, пользователю, статусу и периоду
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListBookings: fetching bookings for admin=%d", req.Actor.UserID)
	if req.ApartmentID != nil {
		logMsg += fmt.Sprintf(", apartment=%d", *req.ApartmentID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("ListBookings: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.sweeper.Sweep(ctx)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
