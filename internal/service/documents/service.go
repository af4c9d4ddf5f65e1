package documents

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/booking"
	documentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/document"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents/models"
)

// Service документы, удостоверяющие личность гостя
type Service struct {
	documentRepo DocumentRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса документов
func NewService(documentRepo DocumentRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		documentRepo: documentRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Submit сохраняет документ пользователя в статусе pending.
// Данные разбираются строго по схеме типа и валидируются до записи.
func (s *Service) Submit(ctx context.Context, req *models.SubmitDocumentRequest) (*models.DocumentResponse, error) {
	s.logger.Info("Submit: user=%d submits document type=%s", req.UserID, req.Type)

	docType := domain.DocumentType(req.Type)
	data, err := domain.DecodeDocumentData(docType, req.Data)
	if err != nil {
		s.logger.Warn("Submit: invalid document data from user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := data.Validate(s.timeProvider.Now()); err != nil {
		s.logger.Warn("Submit: document validation failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Документ можно привязать только к своей брони
	if req.BookingID != nil {
		booking, err := s.bookingRepo.GetByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Submit: booking id=%d not found", *req.BookingID)
				return nil, ErrBookingNotFound
			}
			s.logger.Error("Submit: repository error for booking id=%d: %v", *req.BookingID, err)
			return nil, fmt.Errorf("%w: Submit - booking repository error: %v", ErrInternal, err)
		}
		if booking.UserID != req.UserID {
			s.logger.Warn("Submit: user=%d tried to attach document to booking id=%d", req.UserID, booking.ID)
			return nil, ErrAccessDenied
		}
	}

	doc, err := s.documentRepo.Create(ctx, &domain.Document{
		UserID:    req.UserID,
		BookingID: req.BookingID,
		Type:      docType,
		Data:      data,
		Status:    domain.DocumentPending,
	})
	if err != nil {
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: created document id=%d for user=%d", doc.ID, doc.UserID)
	return models.FromDomainDocument(doc), nil
}

// Review одобряет или отклоняет документ. Только для администратора, только для pending документов.
func (s *Service) Review(ctx context.Context, documentID int64, req *models.ReviewDocumentRequest) (*models.DocumentResponse, error) {
	s.logger.Info("Review: admin=%d reviews document id=%d, approve=%t", req.Actor.UserID, documentID, req.Approve)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("Review: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: comment cannot exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	status := domain.DocumentRejected
	if req.Approve {
		status = domain.DocumentApproved
	}

	// Различаем "нет документа" и "уже проверен"
	if _, err := s.documentRepo.GetByID(ctx, documentID); err != nil {
		return nil, s.mapRepoError("Review", documentID, err)
	}

	if err := s.documentRepo.Review(ctx, documentID, status, req.Actor.UserID, req.Comment); err != nil {
		return nil, s.mapRepoError("Review", documentID, err)
	}

	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, s.mapRepoError("Review", documentID, err)
	}

	s.logger.Info("Review: document id=%d is %s", doc.ID, doc.Status)
	return models.FromDomainDocument(doc), nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, documentRepo.ErrDocumentNotFound):
		s.logger.Warn("%s: document id=%d not found", op, id)
		return ErrDocumentNotFound
	case errors.Is(err, documentRepo.ErrAlreadyReviewed):
		s.logger.Warn("%s: document id=%d already reviewed", op, id)
		return ErrAlreadyReviewed
	}
	s.logger.Error("%s: repository error for document id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
