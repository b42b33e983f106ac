package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

// Service сервис для чтения справочника комнат, зданий и оборудования
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса справочника
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListRooms возвращает комнаты, подходящие под фильтр
func (s *Service) ListRooms(ctx context.Context, filter *models.RoomsFilter) (*models.RoomListResponse, error) {
	if filter == nil {
		filter = &models.RoomsFilter{}
	}
	if filter.MinCapacity < 0 {
		return nil, fmt.Errorf("%w: minCapacity must not be negative", ErrInvalidInput)
	}

	rooms, err := s.catalogRepo.GetRooms(ctx)
	if err != nil {
		s.logger.Error("ListRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}

	result := make([]models.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		if filter.Matches(room) {
			result = append(result, *models.FromDomainRoom(room))
		}
	}

	s.logger.Info("ListRooms: %d of %d rooms match filter", len(result), len(rooms))
	return &models.RoomListResponse{Rooms: result}, nil
}

// GetRoom возвращает комнату по ID
func (s *Service) GetRoom(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.catalogRepo.GetRoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoom: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoom(room), nil
}

// ListBuildings возвращает все здания
func (s *Service) ListBuildings(ctx context.Context) (*models.BuildingListResponse, error) {
	buildings, err := s.catalogRepo.GetBuildings(ctx)
	if err != nil {
		s.logger.Error("ListBuildings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBuildings - repository error: %v", ErrInternal, err)
	}

	result := make([]models.BuildingResponse, 0, len(buildings))
	for _, b := range buildings {
		result = append(result, models.FromDomainBuilding(b))
	}
	return &models.BuildingListResponse{Buildings: result}, nil
}

// ListEquipment возвращает справочник оборудования
func (s *Service) ListEquipment(ctx context.Context) (*models.EquipmentListResponse, error) {
	equipment, err := s.catalogRepo.GetEquipment(ctx)
	if err != nil {
		s.logger.Error("ListEquipment: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListEquipment - repository error: %v", ErrInternal, err)
	}

	result := make([]models.EquipmentResponse, 0, len(equipment))
	for _, e := range equipment {
		result = append(result, models.FromDomainEquipment(e))
	}
	return &models.EquipmentListResponse{Equipment: result}, nil
}
