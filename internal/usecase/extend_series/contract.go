package extend_series

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBySeriesCode(ctx context.Context, code string) ([]*domain.Booking, error)
	CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error)
}

// SnapshotLoader загружает снимок комнат и активных бронирований
type SnapshotLoader interface {
	Load(ctx context.Context, dates []time.Time) (*scheduling.Snapshot, error)
}

// ReleaseSweeper освобождает неявки перед чтением бронирований
type ReleaseSweeper interface {
	Sweep(ctx context.Context)
}

// AccessChecker определяет привилегированных пользователей (администратор, менеджер)
type AccessChecker interface {
	IsPrivileged(ctx context.Context, userID int64) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные метрики
type MetricsRecorder interface {
	BookingsCreated(kind string, count int)
	SlotConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
