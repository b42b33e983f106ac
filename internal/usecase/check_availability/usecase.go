package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
)

// UseCase проверка занятости комнаты с подбором замены
type UseCase struct {
	catalogRepo CatalogRepository
	loader      SnapshotLoader
	sweeper     ReleaseSweeper
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, loader SnapshotLoader, sweeper ReleaseSweeper, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		loader:      loader,
		sweeper:     sweeper,
		logger:      logger,
	}
}

// Execute проверяет, свободна ли комната, и при занятости ищет ближайшую замену
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: room=%d, date=%s, time=%s, duration=%.2f",
		req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Освобождаем неявки, чтобы они не занимали слот
	uc.sweeper.Sweep(ctx)

	// 3. Получаем комнату
	room, err := uc.catalogRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			uc.logger.Warn("CheckAvailability: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 4. Загружаем снимок на дату
	date := domain.DateOnly(req.Date)
	snap, err := uc.loader.Load(ctx, []time.Time{date})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to load snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
	}

	slot := scheduling.Slot{Date: date, StartTime: req.StartTime, DurationHours: req.DurationHours}
	set := scheduling.NewConflictSet(room)

	// 5. Проверяем занятость множества конфликтов
	occupied, err := scheduling.IsOccupied(set, snap.Bookings, slot, 0)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidSlot) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CheckAvailability: occupancy check failed: %v", err)
		return nil, fmt.Errorf("%w: occupancy check failed: %v", ErrInternal, err)
	}

	resp := &Response{
		Room:            room,
		Available:       !occupied,
		ConflictRoomIDs: set.IDs(),
	}
	if !occupied {
		return resp, nil
	}

	// 6. Комната занята: ищем замену
	criteria := scheduling.Criteria{MinCapacity: req.MinCapacity, Equipment: req.Equipment}
	if criteria.MinCapacity == 0 {
		criteria.MinCapacity = room.Capacity
	}

	alternative, err := scheduling.FindAlternative(snap, room, slot, criteria)
	if err != nil {
		uc.logger.Error("CheckAvailability: alternative search failed: %v", err)
		return nil, fmt.Errorf("%w: alternative search failed: %v", ErrInternal, err)
	}

	if alternative != nil {
		uc.logger.Info("CheckAvailability: room=%d occupied, alternative=%d", room.ID, alternative.ID)
	} else {
		uc.logger.Info("CheckAvailability: room=%d occupied, no alternative", room.ID)
	}

	resp.Alternative = alternative
	return resp, nil
}
