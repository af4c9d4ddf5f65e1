package check_availability

import (
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ApartmentID   int64      `json:"apartmentId"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	Available     bool       `json:"available"`
	ApartmentOpen bool       `json:"apartmentOpen"`
	Nights        int        `json:"nights"`
	TotalAmount   float64    `json:"totalAmount"`
	Conflicts     []Conflict `json:"conflicts"`
}

// Conflict пересекающаяся бронь
type Conflict struct {
	BookingID int64  `json:"bookingId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

// ToUseCaseRequest собирает запрос use case из пути и query параметров
func ToUseCaseRequest(r *http.Request) (*checkAvailability.Request, error) {
	apartmentID, err := handlers.ParseID(r, "apartmentId")
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	startDate, err := handlers.ParseDate("startDate", query.Get("startDate"))
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.ParseDate("endDate", query.Get("endDate"))
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		ApartmentID: apartmentID,
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := make([]Conflict, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		conflicts = append(conflicts, Conflict{
			BookingID: c.BookingID,
			StartDate: c.StartDate.Format(domain.DateFormat),
			EndDate:   c.EndDate.Format(domain.DateFormat),
			Status:    string(c.Status),
		})
	}

	return &AvailabilityResponse{
		ApartmentID:   resp.ApartmentID,
		StartDate:     resp.StartDate.Format(domain.DateFormat),
		EndDate:       resp.EndDate.Format(domain.DateFormat),
		Available:     resp.Available,
		ApartmentOpen: resp.ApartmentOpen,
		Nights:        resp.Nights,
		TotalAmount:   resp.TotalAmount,
		Conflicts:     conflicts,
	}
}
