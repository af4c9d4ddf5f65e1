package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров
func ToServiceRequest(r *http.Request, actor domain.Actor) (*models.ListBookingsRequest, error) {
	apartmentID, err := handlers.ParseOptionalID(r, "apartmentId")
	if err != nil {
		return nil, err
	}
	userID, err := handlers.ParseOptionalID(r, "userId")
	if err != nil {
		return nil, err
	}
	from, err := handlers.ParseOptionalDate(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseOptionalDate(r, "to")
	if err != nil {
		return nil, err
	}

	return &models.ListBookingsRequest{
		Actor:       actor,
		ApartmentID: apartmentID,
		UserID:      userID,
		Status:      handlers.OptionalString(r, "status"),
		From:        from,
		To:          to,
	}, nil
}
