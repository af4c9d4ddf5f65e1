package create_hold

import (
	"context"

	createHold "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/create_hold"
)

type UseCase interface {
	Execute(ctx context.Context, req *createHold.Request) (*createHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
