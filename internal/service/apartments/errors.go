package apartments

import "errors"

var (
	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("apartment not found")

	// ErrAccessDenied возвращается, когда операция доступна только администратору
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
