package get_catalog

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListRooms(ctx context.Context, filter *models.RoomsFilter) (*models.RoomListResponse, error)
	GetRoom(ctx context.Context, id int64) (*models.RoomResponse, error)
	ListBuildings(ctx context.Context) (*models.BuildingListResponse, error)
	ListEquipment(ctx context.Context) (*models.EquipmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
