package release_sweep

import (
	"context"

	releaseNoShows "github.com/m04kA/SMC-RoomBookingService/internal/usecase/release_no_shows"
)

type ReleaseUseCase interface {
	Execute(ctx context.Context) (*releaseNoShows.Response, error)
}

// AccessChecker проверяет роль пользователя во внешнем сервисе
type AccessChecker interface {
	IsPrivileged(ctx context.Context, userID int64) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
