package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// Request модели

// SubmitDocumentRequest загрузка документа пользователем
type SubmitDocumentRequest struct {
	UserID    int64           `json:"-"`
	BookingID *int64          `json:"bookingId,omitempty"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"` // поля зависят от type
}

// ReviewDocumentRequest решение администратора по документу
type ReviewDocumentRequest struct {
	Actor   domain.Actor `json:"-"`
	Approve bool         `json:"approve"`
	Comment *string      `json:"comment,omitempty"`
}

// Response модели

// DocumentResponse ответ с данными документа
type DocumentResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"userId"`
	BookingID     *int64              `json:"bookingId,omitempty"`
	Type          string              `json:"type"`
	Data          domain.DocumentData `json:"data"`
	Status        string              `json:"status"`
	ReviewerID    *int64              `json:"reviewerId,omitempty"`
	ReviewComment *string             `json:"reviewComment,omitempty"`
	ReviewedAt    *time.Time          `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// FromDomainDocument конвертирует domain модель в DTO
func FromDomainDocument(d *domain.Document) *DocumentResponse {
	if d == nil {
		return nil
	}

	return &DocumentResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		BookingID:     d.BookingID,
		Type:          string(d.Type),
		Data:          d.Data,
		Status:        string(d.Status),
		ReviewerID:    d.ReviewerID,
		ReviewComment: d.ReviewComment,
		ReviewedAt:    d.ReviewedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
