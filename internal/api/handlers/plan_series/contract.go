package plan_series

import (
	"context"

	planSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/plan_series"
)

type PlanSeriesUseCase interface {
	Execute(ctx context.Context, req *planSeries.Request) (*planSeries.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
