package catalog

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// CatalogRepository интерфейс для чтения справочника помещений
type CatalogRepository interface {
	GetRooms(ctx context.Context) ([]*domain.Room, error)
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
	GetBuildings(ctx context.Context) ([]*domain.Building, error)
	GetEquipment(ctx context.Context) ([]*domain.Equipment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
