package documents

import "errors"

var (
	// ErrDocumentNotFound возвращается, когда документ не найден
	ErrDocumentNotFound = errors.New("document not found")

	// ErrBookingNotFound возвращается, когда бронь, к которой привязан документ, не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyReviewed возвращается при повторной проверке документа
	ErrAlreadyReviewed = errors.New("document already reviewed")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
