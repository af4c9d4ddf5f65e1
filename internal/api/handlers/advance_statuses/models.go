package advance_statuses

import (
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	advanceStatuses "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/advance_statuses"
)

// AdvanceStatusesResponse HTTP response model
type AdvanceStatusesResponse struct {
	Started      int64  `json:"started"`
	Completed    int64  `json:"completed"`
	ExpiredHolds int64  `json:"expiredHolds"`
	Today        string `json:"today"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *advanceStatuses.Response) *AdvanceStatusesResponse {
	return &AdvanceStatusesResponse{
		Started:      resp.Started,
		Completed:    resp.Completed,
		ExpiredHolds: resp.ExpiredHolds,
		Today:        resp.Today.Format(domain.DateFormat),
	}
}
