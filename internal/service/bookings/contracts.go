package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetBySeriesCode(ctx context.Context, code string) ([]*domain.Booking, error)
	GetActiveByDates(ctx context.Context, roomIDs []int64, dates []time.Time) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	CancelMany(ctx context.Context, ids []int64) (int64, error)
}

// CatalogRepository интерфейс репозитория каталога комнат
type CatalogRepository interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// AccessChecker определяет привилегированных пользователей (администратор, менеджер)
type AccessChecker interface {
	IsPrivileged(ctx context.Context, userID int64) bool
}

// ReleaseSweeper освобождает просроченные бронирования перед чтением
type ReleaseSweeper interface {
	Sweep(ctx context.Context)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
