package snapshot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetRooms(ctx context.Context) ([]*domain.Room, error)
	GetBuildings(ctx context.Context) ([]*domain.Building, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByDates(ctx context.Context, roomIDs []int64, dates []time.Time) ([]*domain.Booking, error)
}
