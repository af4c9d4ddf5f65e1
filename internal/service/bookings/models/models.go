package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

var (
	// ErrInvalidPeriod возвращается, когда конец периода раньше начала
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64        `json:"userId"`
	Status *string      `json:"status,omitempty"`
	Actor  domain.Actor `json:"-"`
}

// ListBookingsRequest запрос админки на список бронирований
type ListBookingsRequest struct {
	Actor       domain.Actor `json:"-"`
	ApartmentID *int64       `json:"apartmentId,omitempty"`
	UserID      *int64       `json:"userId,omitempty"`
	Status      *string      `json:"status,omitempty"`
	From        *time.Time   `json:"from,omitempty"` // брони, заканчивающиеся после From
	To          *time.Time   `json:"to,omitempty"`   // брони, начинающиеся до To
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ApartmentID: r.ApartmentID,
		UserID:      r.UserID,
		From:        r.From,
		To:          r.To,
	}

	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return filter, ErrInvalidPeriod
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	ApartmentID int64   `json:"apartmentId"`
	StartDate   string  `json:"startDate"` // "2025-03-10"
	EndDate     string  `json:"endDate"`   // не включительно
	Guests      int     `json:"guests"`
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `json:"status"`

	ExpiresAt          *string `json:"expiresAt,omitempty"` // ISO 8601 format
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ApartmentID:        b.ApartmentID,
		StartDate:          b.StartDate.Format(domain.DateFormat),
		EndDate:            b.EndDate.Format(domain.DateFormat),
		Guests:             b.Guests,
		Nights:             b.Nights,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.ExpiresAt = formatTime(b.ExpiresAt)
	resp.CancelledAt = formatTime(b.CancelledAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
