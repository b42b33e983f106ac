package edit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const conflictOp = "edit_booking"

// UseCase перенос одного повторения на другую дату или время в той же комнате
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	loader       SnapshotLoader
	sweeper      ReleaseSweeper
	access       AccessChecker
	txManager    TransactionManager
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	loader SnapshotLoader,
	sweeper ReleaseSweeper,
	access AccessChecker,
	txManager TransactionManager,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		loader:       loader,
		sweeper:      sweeper,
		access:       access,
		txManager:    txManager,
		metrics:      metrics,
		location:     location,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит бронирование. Занятость пересчитывается без учета самого бронирования,
// план серии заново не строится
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("EditBooking: user=%d, booking=%d, date=%s, time=%s, duration=%.2f",
		req.UserID, req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateNotStarted(req, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("EditBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права
	current, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if current.UserID != req.UserID && !uc.access.IsPrivileged(ctx, req.UserID) {
		uc.logger.Warn("EditBooking: user=%d is not allowed to edit booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 3. Освобождаем неявки до чтения снимка
	uc.sweeper.Sweep(ctx)

	var result *domain.Booking

	// 4. Проверяем занятость и переносим в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем бронирование с блокировкой
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if !booking.CanBeUpdated() {
			uc.logger.Warn("EditBooking: booking id=%d has status=%s, checked_in=%t",
				booking.ID, booking.Status, booking.IsCheckedIn)
			return ErrCannotEdit
		}

		// 4.2. Получаем комнату и ее множество конфликтов
		room, err := uc.catalogRepo.GetRoomByID(txCtx, booking.RoomID)
		if err != nil {
			uc.logger.Error("EditBooking: failed to get room id=%d: %v", booking.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}

		// 4.3. Загружаем бронирования на новую дату
		date := domain.DateOnly(req.Date)
		snap, err := uc.loader.Load(txCtx, []time.Time{date})
		if err != nil {
			uc.logger.Error("EditBooking: failed to load snapshot: %v", err)
			return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}

		// 4.4. Проверяем занятость, исключая само бронирование
		slot := scheduling.Slot{Date: date, StartTime: req.StartTime, DurationHours: req.DurationHours}
		occupied, err := scheduling.IsOccupied(scheduling.NewConflictSet(room), snap.Bookings, slot, booking.ID)
		if err != nil {
			if errors.Is(err, scheduling.ErrInvalidSlot) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return fmt.Errorf("%w: occupancy check failed: %v", ErrInternal, err)
		}
		if occupied {
			uc.logger.Warn("EditBooking: slot %s %s is occupied for room=%d",
				date.Format(domain.DateFormat), req.StartTime, room.ID)
			return ErrSlotNotAvailable
		}

		// 4.5. Переносим
		changed := *booking
		changed.BookingDate = date
		changed.StartTime = req.StartTime
		changed.DurationHours = req.DurationHours

		updated, err := uc.bookingRepo.Reschedule(txCtx, &changed)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			case errors.Is(err, bookingRepo.ErrCannotReschedule):
				return ErrCannotEdit
			default:
				uc.logger.Error("EditBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
			}
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.SlotConflict(conflictOp)
		}
		return nil, err
	}

	uc.logger.Info("EditBooking: booking id=%d moved to %s %s", result.ID,
		result.BookingDate.Format(domain.DateFormat), result.StartTime)

	return result, nil
}

// getBooking получает бронирование и переводит ошибки репозитория
func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("EditBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("EditBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}
