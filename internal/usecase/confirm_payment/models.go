package confirm_payment

import "time"

// Request данные колбэка платёжного шлюза
type Request struct {
	BookingID int64
	OrderID   string
	PaymentID string
	Signature string
}

// Response результат сверки платежа
type Response struct {
	BookingID        int64
	Success          bool
	Status           string
	PaymentID        int64
	Method           string
	Amount           float64
	Currency         string
	AlreadyProcessed bool // повторный колбэк того же платежа
}

// Settings параметры сверки
type Settings struct {
	Currency string         // валюта цен квартир, ISO 4217
	Location *time.Location // часовой пояс для "сегодня"
}
