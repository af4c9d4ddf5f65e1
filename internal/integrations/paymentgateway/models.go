package paymentgateway

import (
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// NoteBookingID ключ в notes платежа, под которым магазин передаёт ID брони
const NoteBookingID = "booking_id"

// Статусы платежа в шлюзе
const (
	StatusCreated    = "created"
	StatusAuthorized = "authorized"
	StatusCaptured   = "captured"
	StatusRefunded   = "refunded"
	StatusFailed     = "failed"
)

// Payment платёж, как его возвращает шлюз. Сумма в минимальных единицах валюты.
type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
	Captured bool   `json:"captured"`

	Notes map[string]string `json:"notes"`
}

// IsSuccessful платёж прошёл (деньги списаны или заблокированы)
func (p *Payment) IsSuccessful() bool {
	return p.Status == StatusCaptured || p.Status == StatusAuthorized
}

// AmountDecimal сумма в основных единицах валюты
func (p *Payment) AmountDecimal() float64 {
	return domain.RoundMoney(float64(p.Amount) / 100)
}

// BookingRef ID брони из notes платежа; false, если его нет или он некорректен
func (p *Payment) BookingRef() (int64, bool) {
	raw, ok := p.Notes[NoteBookingID]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CurrencyCode код валюты в верхнем регистре
func (p *Payment) CurrencyCode() string {
	return strings.ToUpper(p.Currency)
}

// ErrorResponse модель ошибки шлюза
type ErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
