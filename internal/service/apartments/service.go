package apartments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

// Service каталог квартир
type Service struct {
	apartmentRepo ApartmentRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса квартир
func NewService(apartmentRepo ApartmentRepository, logger Logger) *Service {
	return &Service{
		apartmentRepo: apartmentRepo,
		logger:        logger,
	}
}

// Create добавляет квартиру в каталог. Только для администратора.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateApartmentRequest) (*models.ApartmentResponse, error) {
	s.logger.Info("Create: admin=%d creating apartment %q", actor.UserID, req.Title)

	if !actor.IsAdmin() {
		s.logger.Warn("Create: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	apartment, err := s.apartmentRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created apartment id=%d", apartment.ID)
	return models.FromDomainApartment(apartment), nil
}

// GetByID получает квартиру по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ApartmentResponse, error) {
	apartment, err := s.apartmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			s.logger.Warn("GetByID: apartment id=%d not found", id)
			return nil, ErrApartmentNotFound
		}
		s.logger.Error("GetByID: repository error for apartment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainApartment(apartment), nil
}

// List список квартир, опционально только открытых для бронирования
func (s *Service) List(ctx context.Context, onlyAvailable bool) (*models.ApartmentListResponse, error) {
	apartments, err := s.apartmentRepo.List(ctx, onlyAvailable)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainApartmentList(apartments), nil
}

// SetAvailability открывает или закрывает квартиру для новых броней.
// Существующие брони не меняются.
func (s *Service) SetAvailability(ctx context.Context, actor domain.Actor, id int64, available bool) (*models.ApartmentResponse, error) {
	s.logger.Info("SetAvailability: admin=%d sets apartment id=%d available=%t", actor.UserID, id, available)

	if !actor.IsAdmin() {
		s.logger.Warn("SetAvailability: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	if err := s.apartmentRepo.SetAvailability(ctx, id, available); err != nil {
		if errors.Is(err, apartmentRepo.ErrApartmentNotFound) {
			s.logger.Warn("SetAvailability: apartment id=%d not found", id)
			return nil, ErrApartmentNotFound
		}
		s.logger.Error("SetAvailability: repository error for apartment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// validateCreate валидирует параметры новой квартиры
func validateCreate(req *models.CreateApartmentRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if req.PricePerNight <= 0 {
		return fmt.Errorf("%w: pricePerNight must be positive", ErrInvalidInput)
	}

	if req.CleaningFee < 0 {
		return fmt.Errorf("%w: cleaningFee cannot be negative", ErrInvalidInput)
	}

	if req.MaxGuests < domain.MinGuests || req.MaxGuests > domain.MaxGuestsLimit {
		return fmt.Errorf("%w: maxGuests must be between %d and %d", ErrInvalidInput, domain.MinGuests, domain.MaxGuestsLimit)
	}

	return nil
}
