package check_in

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	checkIn "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_in"
)

type CheckInUseCase interface {
	Execute(ctx context.Context, req *checkIn.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
