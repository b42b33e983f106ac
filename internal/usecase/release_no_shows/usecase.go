package release_no_shows

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
)

// UseCase освобождение бронирований, в которых не отметились вовремя
// Вызывается при каждой загрузке бронирований и вручную администратором
type UseCase struct {
	bookingRepo  BookingRepository
	guard        Guard
	policy       scheduling.LifecyclePolicy
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	guard Guard,
	policy scheduling.LifecyclePolicy,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		guard:        guard,
		policy:       policy,
		metrics:      metrics,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет очистку неявок
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	resp := &Response{SweptAt: now, ReleasedIDs: []int64{}}

	// 1. Захватываем блокировку; при недоступности хранилища блокировок продолжаем без неё,
	// UPDATE с условием по статусу не освободит бронь дважды
	acquired, release, err := uc.guard.TryAcquire(ctx)
	if err != nil {
		uc.logger.Warn("ReleaseNoShows: lock unavailable, sweeping without it: %v", err)
	} else if !acquired {
		uc.logger.Info("ReleaseNoShows: sweep is running elsewhere, skipping")
		resp.Skipped = true
		return resp, nil
	} else {
		defer func() {
			if err := release(ctx); err != nil {
				uc.logger.Warn("ReleaseNoShows: failed to release lock: %v", err)
			}
		}()
	}

	// 2. Загружаем кандидатов: активные неотмеченные брони до сегодняшнего дня включительно
	today := domain.DateOnly(now.In(uc.policy.Location))
	candidates, err := uc.bookingRepo.GetPendingCheckIn(ctx, today)
	if err != nil {
		uc.logger.Error("ReleaseNoShows: failed to load candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to load candidates: %v", ErrInternal, err)
	}

	// 3. Отбираем просроченные
	overdue := uc.policy.SweepReleases(candidates, now)
	if len(overdue) == 0 {
		return resp, nil
	}

	ids := make([]int64, 0, len(overdue))
	for _, b := range overdue {
		ids = append(ids, b.ID)
	}

	// 4. Освобождаем
	released, err := uc.bookingRepo.MarkReleased(ctx, ids, now)
	if err != nil {
		uc.logger.Error("ReleaseNoShows: failed to release %d bookings: %v", len(ids), err)
		return nil, fmt.Errorf("%w: failed to release bookings: %v", ErrInternal, err)
	}

	uc.metrics.BookingsReleased(int(released))
	uc.logger.Info("ReleaseNoShows: released %d of %d overdue bookings (threshold=%s)",
		released, len(ids), uc.policy.ReleaseThreshold)

	resp.ReleasedIDs = ids
	resp.Released = released
	return resp, nil
}

// Sweep запускает очистку перед чтением бронирований; ошибки только логируются
func (uc *UseCase) Sweep(ctx context.Context) {
	if _, err := uc.Execute(ctx); err != nil {
		uc.logger.Warn("ReleaseNoShows: opportunistic sweep failed: %v", err)
	}
}
