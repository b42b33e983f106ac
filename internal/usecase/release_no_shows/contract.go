package release_no_shows

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/lock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetPendingCheckIn(ctx context.Context, untilDate time.Time) ([]*domain.Booking, error)
	MarkReleased(ctx context.Context, ids []int64, at time.Time) (int64, error)
}

// Guard блокировка, не дающая нескольким экземплярам запускать очистку одновременно
type Guard interface {
	TryAcquire(ctx context.Context) (bool, lock.Release, error)
}

// MetricsRecorder интерфейс для доменных метрик
type MetricsRecorder interface {
	BookingsReleased(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
