package create_series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/snapshot"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const (
	metricsKind     = "series"
	conflictOp      = "create_series"
	maxCodeAttempts = 3
)

// UseCase use case для создания серии бронирований
type UseCase struct {
	bookingRepo    BookingRepository
	catalogRepo    CatalogRepository
	loader         SnapshotLoader
	sweeper        ReleaseSweeper
	txManager      TransactionManager
	metrics        MetricsRecorder
	maxOccurrences int
	location       *time.Location
	newCode        func() string
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	loader SnapshotLoader,
	sweeper ReleaseSweeper,
	txManager TransactionManager,
	metrics MetricsRecorder,
	maxOccurrences int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		catalogRepo:    catalogRepo,
		loader:         loader,
		sweeper:        sweeper,
		txManager:      txManager,
		metrics:        metrics,
		maxOccurrences: maxOccurrences,
		location:       location,
		newCode:        scheduling.NewSeriesCode,
		timeProvider:   clock.Real{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithCodeGenerator подменяет генератор кода серии
func (uc *UseCase) WithCodeGenerator(gen func() string) *UseCase {
	uc.newCode = gen
	return uc
}

// Execute планирует серию и сохраняет все повторения разом
// Проверка занятости и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSeries: user=%d, room=%d, start=%s %s, duration=%.2f, occurrences=%d",
		req.UserID, req.RoomID, req.StartDate.Format(domain.DateFormat), req.StartTime, req.DurationHours, req.Occurrences)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxOccurrences); err != nil {
		uc.logger.Warn("CreateSeries: validation failed: %v", err)
		return nil, err
	}

	if err := validateNotStarted(req, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("CreateSeries: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем исходную комнату
	room, err := uc.catalogRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateSeries: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateSeries: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if !room.IsActive {
		uc.logger.Warn("CreateSeries: room id=%d is not active", req.RoomID)
		return nil, ErrRoomInactive
	}

	criteria := scheduling.Criteria{MinCapacity: req.MinCapacity, Equipment: req.Equipment}
	if criteria.MinCapacity == 0 {
		criteria.MinCapacity = room.Capacity
	}

	// 3. Освобождаем неявки до чтения снимка, чтобы они не занимали слоты
	uc.sweeper.Sweep(ctx)

	var result *Response

	// 4. Выполняем проверку и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем бронирования на все даты серии с блокировкой (FOR UPDATE)
		snap, err := uc.loader.Load(txCtx, snapshot.WeeklyDates(req.StartDate, req.Occurrences))
		if err != nil {
			uc.logger.Error("CreateSeries: failed to load snapshot: %v", err)
			return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}

		// 4.2. Планируем серию
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
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return fmt.Errorf("%w: planning failed: %v", ErrInternal, err)
		}

		// 4.3. Конфликт хотя бы в одном повторении отклоняет всю серию до записи
		if scheduling.HasConflicts(plan) {
			uc.logger.Warn("CreateSeries: plan for room=%d has unresolved occurrences", room.ID)
			return ErrSeriesConflict
		}

		// 4.4. Генерируем уникальный код серии
		code, err := uc.generateCode(txCtx)
		if err != nil {
			return err
		}

		// 4.5. Формируем и сохраняем бронирования одним INSERT
		bookings, err := scheduling.CommitSeries(plan, code, scheduling.BookingTemplate{
			UserID:        req.UserID,
			StartTime:     req.StartTime,
			DurationHours: req.DurationHours,
		})
		if err != nil {
			if errors.Is(err, scheduling.ErrUnresolvedOccurrence) {
				return fmt.Errorf("%w: %v", ErrSeriesConflict, err)
			}
			return fmt.Errorf("%w: commit failed: %v", ErrInternal, err)
		}

		created, err := uc.bookingRepo.CreateBatch(txCtx, bookings)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				return fmt.Errorf("%w: %v", ErrSeriesConflict, err)
			}
			uc.logger.Error("CreateSeries: failed to create bookings: %v", err)
			return fmt.Errorf("%w: failed to create bookings: %v", ErrInternal, err)
		}

		result = &Response{SeriesCode: code, Bookings: created, Occurrences: plan}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = fmt.Errorf("%w: %v", ErrSeriesConflict, err)
		}
		if errors.Is(err, ErrSeriesConflict) {
			uc.metrics.SlotConflict(conflictOp)
		}
		return nil, err
	}

	uc.metrics.BookingsCreated(metricsKind, len(result.Bookings))
	uc.logger.Info("CreateSeries: created series code=%s with %d bookings", result.SeriesCode, len(result.Bookings))

	return result, nil
}

// generateCode выдает код серии, которого еще нет в БД
func (uc *UseCase) generateCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code := uc.newCode()

		exists, err := uc.bookingRepo.SeriesCodeExists(ctx, code)
		if err != nil {
			uc.logger.Error("CreateSeries: failed to check series code: %v", err)
			return "", fmt.Errorf("%w: failed to check series code: %v", ErrInternal, err)
		}
		if !exists {
			return code, nil
		}

		uc.logger.Warn("CreateSeries: series code %s collision, attempt %d", code, attempt)
	}

	return "", fmt.Errorf("%w: could not generate unique series code", ErrInternal)
}
