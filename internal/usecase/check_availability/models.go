package check_availability

import (
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// Request запрос проверки доступности
type Request struct {
	ApartmentID int64
	StartDate   time.Time // дата заезда
	EndDate     time.Time // дата выезда (не входит в проживание)
}

// Response результат проверки
type Response struct {
	ApartmentID   int64
	StartDate     time.Time
	EndDate       time.Time
	Available     bool // даты свободны и квартира открыта для бронирования
	ApartmentOpen bool
	Nights        int
	TotalAmount   float64 // расчётная стоимость проживания
	Conflicts     []domain.Conflict
}
