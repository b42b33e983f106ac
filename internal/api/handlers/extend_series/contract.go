package extend_series

import (
	"context"

	extendSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/extend_series"
)

type ExtendSeriesUseCase interface {
	Execute(ctx context.Context, req *extendSeries.Request) (*extendSeries.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
