package create_hold

import "time"

// Request запрос на временное удержание дат
type Request struct {
	UserID      int64
	ApartmentID int64
	StartDate   time.Time
	EndDate     time.Time
	Guests      int
}

// Response созданная бронь в статусе pending
type Response struct {
	BookingID   int64
	UserID      int64
	ApartmentID int64
	StartDate   time.Time
	EndDate     time.Time
	Guests      int
	Status      string
	ExpiresAt   time.Time
	Nights      int
	TotalAmount float64
	CreatedAt   time.Time
}

// Settings правила бронирования из конфигурации
type Settings struct {
	HoldDuration time.Duration
	MaxNights    int
	Location     *time.Location // часовой пояс для "сегодня"
}
