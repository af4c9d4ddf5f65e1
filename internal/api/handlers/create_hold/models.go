package create_hold

import (
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	createHold "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	ApartmentID int64  `json:"apartmentId"`
	StartDate   string `json:"startDate"` // "2025-03-10", дата заезда
	EndDate     string `json:"endDate"`   // "2025-03-13", дата выезда
	Guests      int    `json:"guests"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	ApartmentID int64   `json:"apartmentId"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Guests      int     `json:"guests"`
	Status      string  `json:"status"`
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"totalAmount"`
	ExpiresAt   string  `json:"expiresAt"`
	CreatedAt   string  `json:"createdAt"`
}

// ConflictResponse ответ 409 с пересекающимися бронями
type ConflictResponse struct {
	Error     string     `json:"error"`
	Conflicts []Conflict `json:"conflicts"`
}

// Conflict пересекающаяся бронь
type Conflict struct {
	BookingID int64  `json:"bookingId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(userID int64) (*createHold.Request, error) {
	startDate, err := handlers.ParseDate("startDate", r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.ParseDate("endDate", r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createHold.Request{
		UserID:      userID,
		ApartmentID: r.ApartmentID,
		StartDate:   startDate,
		EndDate:     endDate,
		Guests:      r.Guests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.BookingID,
		UserID:      resp.UserID,
		ApartmentID: resp.ApartmentID,
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		Guests:      resp.Guests,
		Status:      resp.Status,
		Nights:      resp.Nights,
		TotalAmount: resp.TotalAmount,
		ExpiresAt:   resp.ExpiresAt.UTC().Format(time.RFC3339),
		CreatedAt:   resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromConflicts конвертирует доменные конфликты в HTTP модель
func FromConflicts(message string, conflicts []domain.Conflict) *ConflictResponse {
	resp := &ConflictResponse{
		Error:     message,
		Conflicts: make([]Conflict, 0, len(conflicts)),
	}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, Conflict{
			BookingID: c.BookingID,
			StartDate: c.StartDate.Format(domain.DateFormat),
			EndDate:   c.EndDate.Format(domain.DateFormat),
			Status:    string(c.Status),
		})
	}
	return resp
}
