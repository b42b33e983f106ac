package extend_series

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const (
	metricsKind = "extension"
	conflictOp  = "extend_series"
)

// UseCase use case для продления серии на несколько недель
type UseCase struct {
	bookingRepo    BookingRepository
	loader         SnapshotLoader
	sweeper        ReleaseSweeper
	access         AccessChecker
	txManager      TransactionManager
	metrics        MetricsRecorder
	maxOccurrences int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	loader SnapshotLoader,
	sweeper ReleaseSweeper,
	access AccessChecker,
	txManager TransactionManager,
	metrics MetricsRecorder,
	maxOccurrences int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		loader:         loader,
		sweeper:        sweeper,
		access:         access,
		txManager:      txManager,
		metrics:        metrics,
		maxOccurrences: maxOccurrences,
		logger:         logger,
	}
}

// Execute продлевает серию от последнего повторения
// Каждая неделя пробует комнату предыдущей недели, затем замену в том же здании.
// Первая неразрешенная неделя отменяет все продление
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	req.SeriesCode = scheduling.NormalizeSeriesCode(req.SeriesCode)
	uc.logger.Info("ExtendSeries: user=%d, series=%s, weeks=%d", req.UserID, req.SeriesCode, req.Weeks)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxOccurrences); err != nil {
		uc.logger.Warn("ExtendSeries: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права на серию
	series, err := uc.bookingRepo.GetBySeriesCode(ctx, req.SeriesCode)
	if err != nil {
		uc.logger.Error("ExtendSeries: failed to get series %s: %v", req.SeriesCode, err)
		return nil, fmt.Errorf("%w: failed to get series: %v", ErrInternal, err)
	}
	if len(series) == 0 {
		uc.logger.Warn("ExtendSeries: series %s not found", req.SeriesCode)
		return nil, ErrSeriesNotFound
	}

	owner := series[0].UserID
	if owner != req.UserID && !uc.access.IsPrivileged(ctx, req.UserID) {
		uc.logger.Warn("ExtendSeries: user=%d is not allowed to extend series %s of user=%d",
			req.UserID, req.SeriesCode, owner)
		return nil, ErrAccessDenied
	}

	// 3. Освобождаем неявки до чтения снимка
	uc.sweeper.Sweep(ctx)

	var result *Response

	// 4. Планируем и сохраняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем серию с блокировкой
		series, err := uc.bookingRepo.GetBySeriesCode(txCtx, req.SeriesCode)
		if err != nil {
			return fmt.Errorf("%w: failed to get series: %v", ErrInternal, err)
		}

		dates := extensionDates(series, req.Weeks)
		if dates == nil {
			uc.logger.Warn("ExtendSeries: series %s has no active occurrences", req.SeriesCode)
			return ErrSeriesNotFound
		}

		// 4.2. Загружаем бронирования на новые недели
		snap, err := uc.loader.Load(txCtx, dates)
		if err != nil {
			uc.logger.Error("ExtendSeries: failed to load snapshot: %v", err)
			return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}

		// 4.3. Планируем продление
		plan, err := scheduling.PlanExtension(snap, series, req.Weeks, scheduling.SameBuildingPolicy{})
		if err != nil {
			switch {
			case errors.Is(err, scheduling.ErrUnresolvedOccurrence):
				uc.logger.Warn("ExtendSeries: series %s cannot be extended: %v", req.SeriesCode, err)
				return fmt.Errorf("%w: %v", ErrExtensionConflict, err)
			case errors.Is(err, scheduling.ErrEmptySeries):
				return ErrSeriesNotFound
			default:
				uc.logger.Error("ExtendSeries: planning failed: %v", err)
				return fmt.Errorf("%w: planning failed: %v", ErrInternal, err)
			}
		}

		// 4.4. Новые повторения наследуют владельца, время и длительность последнего
		var latest *domain.Booking
		for _, b := range series {
			if b.IsActive() && (latest == nil || !b.BookingDate.Before(latest.BookingDate)) {
				latest = b
			}
		}

		bookings, err := scheduling.CommitSeries(plan, req.SeriesCode, scheduling.BookingTemplate{
			UserID:        owner,
			StartTime:     latest.StartTime,
			DurationHours: latest.DurationHours,
		})
		if err != nil {
			if errors.Is(err, scheduling.ErrUnresolvedOccurrence) {
				return fmt.Errorf("%w: %v", ErrExtensionConflict, err)
			}
			return fmt.Errorf("%w: commit failed: %v", ErrInternal, err)
		}

		created, err := uc.bookingRepo.CreateBatch(txCtx, bookings)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				return fmt.Errorf("%w: %v", ErrExtensionConflict, err)
			}
			uc.logger.Error("ExtendSeries: failed to create bookings: %v", err)
			return fmt.Errorf("%w: failed to create bookings: %v", ErrInternal, err)
		}

		result = &Response{SeriesCode: req.SeriesCode, Bookings: created, Occurrences: plan}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = fmt.Errorf("%w: %v", ErrExtensionConflict, err)
		}
		if errors.Is(err, ErrExtensionConflict) {
			uc.metrics.SlotConflict(conflictOp)
		}
		return nil, err
	}

	uc.metrics.BookingsCreated(metricsKind, len(result.Bookings))
	uc.logger.Info("ExtendSeries: added %d bookings to series %s", len(result.Bookings), result.SeriesCode)

	return result, nil
}
