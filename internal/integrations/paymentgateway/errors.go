package paymentgateway

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда шлюз не знает такого платежа
	ErrPaymentNotFound = errors.New("paymentgateway client: payment not found")

	// ErrUnauthorized возвращается, когда шлюз отклонил ключи доступа
	ErrUnauthorized = errors.New("paymentgateway client: unauthorized")

	// ErrInternal возвращается при ошибках транспорта и внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
