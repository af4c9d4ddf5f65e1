package check_availability

import "errors"

var (
	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("check_availability: apartment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
