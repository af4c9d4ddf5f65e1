package set_booking_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("set_booking_status: invalid input data")

	// ErrBookingNotFound возвращается, когда бронь не найдена
	ErrBookingNotFound = errors.New("set_booking_status: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на переход
	ErrAccessDenied = errors.New("set_booking_status: access denied")

	// ErrInvalidTransition возвращается для переходов, которых нет в таблице ручных переходов
	ErrInvalidTransition = errors.New("set_booking_status: invalid status transition")

	// ErrVerificationRequired возвращается, когда квартира требует одобренный документ гостя
	ErrVerificationRequired = errors.New("set_booking_status: approved identity document required")

	// ErrHoldExpired возвращается, когда удержание истекло и даты уже заняты
	ErrHoldExpired = errors.New("set_booking_status: hold expired and dates are taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_booking_status: internal error")
)
