package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var day = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	filter    domain.UserBookingsFilter
	roomIDs   []int64
	cancelled []int64
	cancelErr error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID == filter.UserID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) GetBySeriesCode(_ context.Context, code string) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.BookingCode == code {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) GetActiveByDates(_ context.Context, roomIDs []int64, _ []time.Time) ([]*domain.Booking, error) {
	f.roomIDs = roomIDs
	return f.bookings, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeBookingRepo) CancelMany(_ context.Context, ids []int64) (int64, error) {
	f.cancelled = append(f.cancelled, ids...)
	return int64(len(ids)), nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetRoomByID(_ context.Context, id int64) (*domain.Room, error) {
	combo := &domain.Combination{ID: 1, UnionRoomID: 10, MemberRoomIDs: []int64{11, 12}}
	switch id {
	case 10:
		return &domain.Room{ID: 10, Combination: combo}, nil
	case 11:
		return &domain.Room{ID: 11, Combination: combo}, nil
	}
	return nil, catalogRepo.ErrRoomNotFound
}

type fakeAccess struct{}

func (fakeAccess) IsPrivileged(_ context.Context, userID int64) bool { return userID == 1 }

type fakeSweeper struct{ calls int }

func (f *fakeSweeper) Sweep(context.Context) { f.calls++ }

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func booking(id, userID int64, week int, start string, code string) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		RoomID:        11,
		UserID:        userID,
		BookingDate:   day.AddDate(0, 0, 7*week),
		StartTime:     types.TimeString(start),
		DurationHours: 1.5,
		Status:        domain.StatusActive,
		BookingCode:   code,
	}
}

func setup(now time.Time, bookings ...*domain.Booking) (*Service, *fakeBookingRepo, *fakeSweeper) {
	repo := &fakeBookingRepo{bookings: bookings}
	sweeper := &fakeSweeper{}
	svc := NewService(repo, fakeCatalog{}, fakeAccess{}, sweeper, fakeTxManager{}, time.UTC, logger.NewNop()).
		WithTimeProvider(&clock.Fixed{At: now})
	return svc, repo, sweeper
}

func TestGetByID(t *testing.T) {
	svc, _, sweeper := setup(day, booking(1, 7, 0, "10:00", "AAAA0001"))

	resp, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "11:30", resp.EndTime)
	assert.Equal(t, "2026-03-10", resp.BookingDate)
	assert.Equal(t, 1, sweeper.calls)

	_, err = svc.GetByID(context.Background(), 1, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 1, 1)
	assert.NoError(t, err, "привилегированный пользователь видит чужие брони")

	_, err = svc.GetByID(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	svc, repo, _ := setup(day,
		booking(1, 7, 0, "10:00", "AAAA0001"),
		booking(2, 8, 0, "12:00", "BBBB0002"),
	)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		ActorID:  7,
		UserID:   7,
		Status:   ptr.Ptr("active"),
		FromDate: ptr.Ptr(day.Add(15 * time.Hour)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.StatusActive, *repo.filter.Status)
	assert.Equal(t, day, *repo.filter.FromDate)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{ActorID: 7, UserID: 7, Status: ptr.Ptr("confirmed")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{ActorID: 7, UserID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSeries(t *testing.T) {
	svc, _, _ := setup(day,
		booking(1, 7, 0, "10:00", "AAAA0001"),
		booking(2, 7, 1, "10:00", "AAAA0001"),
	)

	resp, err := svc.GetSeries(context.Background(), "aaaa0001", 7)
	require.NoError(t, err)
	assert.Equal(t, "AAAA0001", resp.SeriesCode)
	assert.Equal(t, int64(7), resp.OwnerID)
	assert.Len(t, resp.Bookings, 2)

	_, err = svc.GetSeries(context.Background(), "ZZZZ9999", 7)
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}

func TestGetRoomSchedule_UsesConflictSet(t *testing.T) {
	svc, repo, _ := setup(day, booking(1, 7, 0, "10:00", "AAAA0001"))

	resp, err := svc.GetRoomSchedule(context.Background(), &models.GetRoomScheduleRequest{RoomID: 10, Date: day})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 12}, repo.roomIDs)
	assert.Equal(t, []int64{10, 11, 12}, resp.ConflictRoomIDs)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetRoomSchedule(context.Background(), &models.GetRoomScheduleRequest{RoomID: 99, Date: day})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCancel(t *testing.T) {
	released := booking(2, 7, 0, "12:00", "BBBB0002")
	released.Status = domain.StatusReleased

	svc, repo, _ := setup(day, booking(1, 7, 0, "10:00", "AAAA0001"), released)

	assert.ErrorIs(t, svc.Cancel(context.Background(), 1, 8), ErrAccessDenied)
	assert.ErrorIs(t, svc.Cancel(context.Background(), 2, 7), ErrCannotCancel)
	require.NoError(t, svc.Cancel(context.Background(), 1, 7))
	assert.Equal(t, []int64{1}, repo.cancelled)

	repo.cancelErr = bookingRepo.ErrCannotCancel
	assert.ErrorIs(t, svc.Cancel(context.Background(), 1, 1), ErrCannotCancel)
}

func TestCancelSeries_OnlyUpcomingActive(t *testing.T) {
	now := day.Add(11 * time.Hour) // серия уже началась сегодня в 10:00
	cancelled := booking(3, 7, 2, "10:00", "AAAA0001")
	cancelled.Status = domain.StatusCancelled

	svc, repo, _ := setup(now,
		booking(1, 7, 0, "10:00", "AAAA0001"),
		booking(2, 7, 1, "10:00", "AAAA0001"),
		cancelled,
		booking(4, 7, 3, "10:00", "AAAA0001"),
	)

	resp, err := svc.CancelSeries(context.Background(), "AAAA0001", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Cancelled)
	assert.Equal(t, []int64{2, 4}, repo.cancelled)

	_, err = svc.CancelSeries(context.Background(), "AAAA0001", 8)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
