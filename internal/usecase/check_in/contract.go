package check_in

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkCheckedIn(ctx context.Context, id int64, at time.Time) error
}

// ReleaseSweeper освобождает неявки перед чтением бронирований
type ReleaseSweeper interface {
	Sweep(ctx context.Context)
}

// AccessChecker определяет привилегированных пользователей (администратор, менеджер)
type AccessChecker interface {
	IsPrivileged(ctx context.Context, userID int64) bool
}

// MetricsRecorder доменные метрики
type MetricsRecorder interface {
	CheckIn(result string)
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
