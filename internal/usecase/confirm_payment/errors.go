package confirm_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInvalidSignature возвращается, когда подпись колбэка не совпала
	ErrInvalidSignature = errors.New("confirm_payment: invalid signature")

	// ErrGatewayError возвращается, когда шлюз недоступен или ответил ошибкой
	ErrGatewayError = errors.New("confirm_payment: payment gateway error")

	// ErrPaymentMismatch возвращается, когда платёж шлюза не соответствует брони
	ErrPaymentMismatch = errors.New("confirm_payment: payment does not match booking")

	// ErrBookingNotFound возвращается, когда бронь не найдена
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrInvalidTransition возвращается, когда бронь нельзя подтвердить из текущего статуса
	ErrInvalidTransition = errors.New("confirm_payment: booking cannot be confirmed")

	// ErrHoldExpired возвращается, когда удержание истекло и даты уже заняты
	ErrHoldExpired = errors.New("confirm_payment: hold expired and dates are taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
