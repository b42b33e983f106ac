package plan_series

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
)

// CatalogRepository интерфейс репозитория каталога комнат
type CatalogRepository interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// SnapshotLoader загружает снимок комнат и активных бронирований
type SnapshotLoader interface {
	Load(ctx context.Context, dates []time.Time) (*scheduling.Snapshot, error)
}

// ReleaseSweeper освобождает просроченные бронирования перед чтением
type ReleaseSweeper interface {
	Sweep(ctx context.Context)
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
