package create_series

import (
	"context"

	createSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_series"
)

type CreateSeriesUseCase interface {
	Execute(ctx context.Context, req *createSeries.Request) (*createSeries.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
