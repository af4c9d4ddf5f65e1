package apartment

import "github.com/m04kA/SMC-ApartmentBooking/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
