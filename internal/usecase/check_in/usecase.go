package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
)

// UseCase отметка присутствия в забронированной комнате
type UseCase struct {
	bookingRepo  BookingRepository
	sweeper      ReleaseSweeper
	access       AccessChecker
	policy       scheduling.LifecyclePolicy
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sweeper ReleaseSweeper,
	access AccessChecker,
	policy scheduling.LifecyclePolicy,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		sweeper:      sweeper,
		access:       access,
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

// Execute проверяет окно и код, затем отмечает присутствие
// При отказе состояние бронирования не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CheckIn: user=%d, booking=%d", req.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckIn: validation failed: %v", err)
		return nil, err
	}

	// 2. Освобождаем неявки, чтобы опоздавший не отметился в уже отданной комнате
	uc.sweeper.Sweep(ctx)

	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Отмечаться может владелец или привилегированный пользователь
	if booking.UserID != req.UserID && !uc.access.IsPrivileged(ctx, req.UserID) {
		uc.logger.Warn("CheckIn: user=%d is not allowed to check in booking id=%d", req.UserID, req.BookingID)
		uc.metrics.CheckIn(resultRejected)
		return nil, ErrAccessDenied
	}

	// 5. Проверяем статус, окно и код
	if err := uc.policy.VerifyCheckIn(booking, req.Code, now); err != nil {
		result, mapped := mapVerifyError(err)
		uc.metrics.CheckIn(result)
		uc.logger.Warn("CheckIn: booking id=%d rejected: %v", booking.ID, err)
		return nil, mapped
	}

	// 6. Отмечаем
	if err := uc.bookingRepo.MarkCheckedIn(ctx, booking.ID, now); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCheckIn) {
			uc.logger.Warn("CheckIn: booking id=%d changed state concurrently", booking.ID)
			uc.metrics.CheckIn(resultRejected)
			return nil, fmt.Errorf("%w: state changed", ErrBookingNotActive)
		}
		uc.logger.Error("CheckIn: failed to mark booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to mark check-in: %v", ErrInternal, err)
	}

	uc.metrics.CheckIn(resultOK)
	uc.logger.Info("CheckIn: booking id=%d checked in at %s", booking.ID, now.Format("15:04:05"))

	booking.IsCheckedIn = true
	booking.CheckedInAt = &now
	return booking, nil
}

// mapVerifyError переводит ошибки проверки в метку метрики и ошибку use case
func mapVerifyError(err error) (string, error) {
	switch {
	case errors.Is(err, scheduling.ErrBookingNotActive):
		return resultRejected, ErrBookingNotActive
	case errors.Is(err, scheduling.ErrAlreadyCheckedIn):
		return resultRejected, ErrAlreadyCheckedIn
	case errors.Is(err, scheduling.ErrCheckInTooEarly):
		return resultEarly, ErrTooEarly
	case errors.Is(err, scheduling.ErrCheckInTooLate):
		return resultLate, ErrTooLate
	case errors.Is(err, scheduling.ErrCodeMismatch):
		return resultMismatch, ErrCodeMismatch
	default:
		return resultRejected, fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
