package plan_series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/snapshot"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
)

// UseCase предварительный план серии без записи в БД
type UseCase struct {
	catalogRepo    CatalogRepository
	loader         SnapshotLoader
	sweeper        ReleaseSweeper
	maxOccurrences int
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	loader SnapshotLoader,
	sweeper ReleaseSweeper,
	maxOccurrences int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		catalogRepo:    catalogRepo,
		loader:         loader,
		sweeper:        sweeper,
		maxOccurrences: maxOccurrences,
		location:       location,
		timeProvider:   clock.Real{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute строит план серии: для каждой недели исходная комната, замена или конфликт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlanSeries: room=%d, start=%s %s, duration=%.2f, occurrences=%d",
		req.RoomID, req.StartDate.Format(domain.DateFormat), req.StartTime, req.DurationHours, req.Occurrences)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxOccurrences); err != nil {
		uc.logger.Warn("PlanSeries: validation failed: %v", err)
		return nil, err
	}

	if err := validateNotStarted(req, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("PlanSeries: date validation failed: %v", err)
		return nil, err
	}

	// 2. Освобождаем неявки
	uc.sweeper.Sweep(ctx)

	// 3. Получаем исходную комнату
	room, err := uc.catalogRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			uc.logger.Warn("PlanSeries: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("PlanSeries: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if !room.IsActive {
		uc.logger.Warn("PlanSeries: room id=%d is not active", req.RoomID)
		return nil, ErrRoomInactive
	}

	// 4. Загружаем снимок на все даты серии
	dates := snapshot.WeeklyDates(req.StartDate, req.Occurrences)
	snap, err := uc.loader.Load(ctx, dates)
	if err != nil {
		uc.logger.Error("PlanSeries: failed to load snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
	}

	// 5. Планируем
	criteria := scheduling.Criteria{MinCapacity: req.MinCapacity, Equipment: req.Equipment}
	if criteria.MinCapacity == 0 {
		criteria.MinCapacity = room.Capacity
	}

	plan, err := scheduling.PlanSeries(snap, scheduling.SeriesRequest{
		AnchorRoom: room,
		Slot: scheduling.Slot{
			Date:          domain.DateOnly(req.StartDate),
			StartTime:     req.StartTime,
			DurationHours: req.DurationHours,
		},
		Occurrences: req.Occurrences,
		Criteria:    criteria,
	})
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidSlot) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("PlanSeries: planning failed: %v", err)
		return nil, fmt.Errorf("%w: planning failed: %v", ErrInternal, err)
	}

	hasConflicts := scheduling.HasConflicts(plan)
	uc.logger.Info("PlanSeries: planned %d occurrences for room=%d, conflicts=%t", len(plan), room.ID, hasConflicts)

	return &Response{
		Room:         room,
		Occurrences:  plan,
		HasConflicts: hasConflicts,
	}, nil
}
