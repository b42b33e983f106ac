package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
)

// Service сервис чтения и отмены бронирований
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	access       AccessChecker
	sweeper      ReleaseSweeper
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	access AccessChecker,
	sweeper ReleaseSweeper,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		access:       access,
		sweeper:      sweeper,
		txManager:    txManager,
		location:     location,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Видеть бронирование может владелец или привилегированный пользователь
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	s.sweeper.Sweep(ctx)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking.UserID, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Опционально фильтрует по статусу и дате начала
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by actor=%d, status=%v", req.UserID, req.ActorID, req.Status)

	if err := s.checkUserAccess(ctx, req.UserID, req.ActorID); err != nil {
		s.logger.Warn("GetUserBookings: access denied for actor=%d to user=%d", req.ActorID, req.UserID)
		return nil, err
	}

	filter := domain.UserBookingsFilter{UserID: req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}
	if req.FromDate != nil {
		from := domain.DateOnly(*req.FromDate)
		filter.FromDate = &from
	}

	s.sweeper.Sweep(ctx)

	bookings, err := s.bookingRepo.GetByUserID(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return &models.BookingListResponse{Bookings: models.FromDomainBookingList(bookings)}, nil
}

// GetSeries получает все повторения серии в порядке дат
func (s *Service) GetSeries(ctx context.Context, code string, userID int64) (*models.SeriesResponse, error) {
	code = scheduling.NormalizeSeriesCode(code)
	s.logger.Info("GetSeries: fetching series %s for user=%d", code, userID)

	s.sweeper.Sweep(ctx)

	series, err := s.getSeries(ctx, "GetSeries", code)
	if err != nil {
		return nil, err
	}

	owner := series[0].UserID
	if err := s.checkUserAccess(ctx, owner, userID); err != nil {
		s.logger.Warn("GetSeries: access denied for user=%d to series %s", userID, code)
		return nil, err
	}

	return &models.SeriesResponse{
		SeriesCode: code,
		OwnerID:    owner,
		Bookings:   models.FromDomainBookingList(series),
	}, nil
}

// GetRoomSchedule получает активные бронирования, блокирующие комнату на дату
// С учетом комбинаций: для объединенной комнаты попадают брони участниц и наоборот
func (s *Service) GetRoomSchedule(ctx context.Context, req *models.GetRoomScheduleRequest) (*models.RoomScheduleResponse, error) {
	s.logger.Info("GetRoomSchedule: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	if req.RoomID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: roomId and date are required", ErrInvalidInput)
	}

	room, err := s.catalogRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoomSchedule: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoomSchedule: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomSchedule - catalog error: %v", ErrInternal, err)
	}

	s.sweeper.Sweep(ctx)

	date := domain.DateOnly(req.Date)
	set := scheduling.NewConflictSet(room)

	bookings, err := s.bookingRepo.GetActiveByDates(ctx, set.IDs(), []time.Time{date})
	if err != nil {
		s.logger.Error("GetRoomSchedule: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomSchedule - repository error: %v", ErrInternal, err)
	}

	return &models.RoomScheduleResponse{
		RoomID:          room.ID,
		Date:            date.Format(domain.DateFormat),
		ConflictRoomIDs: set.IDs(),
		Bookings:        models.FromDomainBookingList(bookings),
	}, nil
}

// Cancel отменяет одно повторение
// Отменить может владелец или привилегированный пользователь
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkUserAccess(ctx, booking.UserID, userID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", userID, bookingID)
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: booking id=%d changed state concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// CancelSeries отменяет оставшиеся активные повторения серии, которые еще не начались
func (s *Service) CancelSeries(ctx context.Context, code string, userID int64) (*models.CancelSeriesResponse, error) {
	code = scheduling.NormalizeSeriesCode(code)
	s.logger.Info("CancelSeries: cancelling series %s by user=%d", code, userID)

	series, err := s.getSeries(ctx, "CancelSeries", code)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, series[0].UserID, userID); err != nil {
		s.logger.Warn("CancelSeries: access denied for user=%d to series %s", userID, code)
		return nil, err
	}

	now := s.timeProvider.Now()
	var cancelled int64

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Перечитываем серию с блокировкой строк
		series, err := s.bookingRepo.GetBySeriesCode(txCtx, code)
		if err != nil {
			return fmt.Errorf("%w: CancelSeries - repository error: %v", ErrInternal, err)
		}

		ids := s.upcomingActive(series, now)
		if len(ids) == 0 {
			return nil
		}

		cancelled, err = s.bookingRepo.CancelMany(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: CancelSeries - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("CancelSeries: failed to cancel series %s: %v", code, err)
		return nil, err
	}

	s.logger.Info("CancelSeries: cancelled %d occurrences of series %s", cancelled, code)
	return &models.CancelSeriesResponse{SeriesCode: code, Cancelled: cancelled}, nil
}

// Вспомогательные методы

// upcomingActive возвращает ID активных повторений, начало которых еще не наступило
func (s *Service) upcomingActive(series []*domain.Booking, now time.Time) []int64 {
	ids := make([]int64, 0, len(series))
	for _, b := range series {
		if !b.CanBeCancelled() {
			continue
		}
		start, err := b.ScheduledStart(s.location)
		if err != nil {
			s.logger.Warn("CancelSeries: booking id=%d has invalid start time %q", b.ID, b.StartTime)
			continue
		}
		if start.After(now) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getSeries(ctx context.Context, op string, code string) ([]*domain.Booking, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: series code is required", ErrInvalidInput)
	}

	series, err := s.bookingRepo.GetBySeriesCode(ctx, code)
	if err != nil {
		s.logger.Error("%s: repository error for series %s: %v", op, code, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if len(series) == 0 {
		s.logger.Warn("%s: series %s not found", op, code)
		return nil, ErrSeriesNotFound
	}
	return series, nil
}

// checkUserAccess проверяет, что пользователь владелец или привилегирован
func (s *Service) checkUserAccess(ctx context.Context, ownerID int64, userID int64) error {
	if ownerID == userID {
		return nil
	}

	if s.access.IsPrivileged(ctx, userID) {
		s.logger.Info("checkUserAccess: privileged user=%d acts on behalf of user=%d", userID, ownerID)
		return nil
	}

	return ErrAccessDenied
}
