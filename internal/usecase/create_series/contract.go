package create_series

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error)
	SeriesCodeExists(ctx context.Context, code string) (bool, error)
}

// ReleaseSweeper освобождает неявки перед чтением бронирований
type ReleaseSweeper interface {
	Sweep(ctx context.Context)
}

// CatalogRepository интерфейс репозитория каталога комнат
type CatalogRepository interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// SnapshotLoader загружает снимок комнат и активных бронирований
type SnapshotLoader interface {
	Load(ctx context.Context, dates []time.Time) (*scheduling.Snapshot, error)
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
