package apartment

import "errors"

var (
	// ErrApartmentNotFound возвращается, когда квартира не найдена
	ErrApartmentNotFound = errors.New("apartment.repository: apartment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("apartment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("apartment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("apartment.repository: failed to scan row")
)
