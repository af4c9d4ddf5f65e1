package advance_statuses

import (
	"context"

	advanceStatuses "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/advance_statuses"
)

type UseCase interface {
	Execute(ctx context.Context) (*advanceStatuses.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
