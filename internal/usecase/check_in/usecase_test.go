package check_in

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

var day = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	booking  *domain.Booking
	markErr  error
	markedAt *time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *f.booking
	return &cp, nil
}

func (f *fakeBookingRepo) MarkCheckedIn(_ context.Context, _ int64, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedAt = &at
	return nil
}

type fakeSweeper struct {
	repo   *fakeBookingRepo
	policy scheduling.LifecyclePolicy
	now    time.Time
	calls  int
}

func (s *fakeSweeper) Sweep(_ context.Context) {
	s.calls++
	if s.repo.booking == nil {
		return
	}
	for _, b := range s.policy.SweepReleases([]*domain.Booking{s.repo.booking}, s.now) {
		b.Status = domain.StatusReleased
	}
}

type fakeAccess struct{}

func (fakeAccess) IsPrivileged(_ context.Context, userID int64) bool { return userID == 1 }

type fakeMetrics struct{ results []string }

func (f *fakeMetrics) CheckIn(result string) { f.results = append(f.results, result) }

// Бронирование 10:00-11:00, окно отметки 09:30-11:00
func newBooking() *domain.Booking {
	return &domain.Booking{
		ID:            5,
		RoomID:        1,
		UserID:        7,
		BookingDate:   day,
		StartTime:     "10:00",
		DurationHours: 1,
		Status:        domain.StatusActive,
		BookingCode:   "ABCD1234",
	}
}

func at(hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func setup(b *domain.Booking, now time.Time) (*UseCase, *fakeBookingRepo, *fakeMetrics) {
	uc, repo, metrics, _ := setupWithPolicy(b, now, scheduling.NewLifecyclePolicy(30, 15, time.UTC))
	return uc, repo, metrics
}

func setupWithPolicy(b *domain.Booking, now time.Time, policy scheduling.LifecyclePolicy) (*UseCase, *fakeBookingRepo, *fakeMetrics, *fakeSweeper) {
	repo := &fakeBookingRepo{booking: b}
	metrics := &fakeMetrics{}
	sweeper := &fakeSweeper{repo: repo, policy: policy, now: now}
	uc := NewUseCase(repo, sweeper, fakeAccess{}, policy, metrics, logger.NewNop()).
		WithTimeProvider(&clock.Fixed{At: now})
	return uc, repo, metrics, sweeper
}

func TestExecute_Success(t *testing.T) {
	uc, repo, metrics := setup(newBooking(), at(9, 30))

	booking, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 5, Code: " abcd1234 "})
	require.NoError(t, err)

	assert.True(t, booking.IsCheckedIn)
	require.NotNil(t, booking.CheckedInAt)
	assert.Equal(t, at(9, 30), *booking.CheckedInAt)
	require.NotNil(t, repo.markedAt)
	assert.Equal(t, []string{"ok"}, metrics.results)
}

func TestExecute_Rejections(t *testing.T) {
	checkedIn := newBooking()
	checkedIn.IsCheckedIn = true
	released := newBooking()
	released.Status = domain.StatusReleased

	tests := []struct {
		name       string
		booking    *domain.Booking
		now        time.Time
		req        *Request
		wantErr    error
		wantMetric string
	}{
		{name: "слишком рано", booking: newBooking(), now: at(9, 29), req: &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"}, wantErr: ErrTooEarly, wantMetric: "too_early"},
		{name: "неявка уже освобождена", booking: newBooking(), now: at(11, 1), req: &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"}, wantErr: ErrBookingNotActive, wantMetric: "rejected"},
		{name: "неверный код", booking: newBooking(), now: at(10, 0), req: &Request{UserID: 7, BookingID: 5, Code: "ZZZZ0000"}, wantErr: ErrCodeMismatch, wantMetric: "code_mismatch"},
		{name: "уже отмечено", booking: checkedIn, now: at(10, 0), req: &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"}, wantErr: ErrAlreadyCheckedIn, wantMetric: "rejected"},
		{name: "освобождено", booking: released, now: at(10, 0), req: &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"}, wantErr: ErrBookingNotActive, wantMetric: "rejected"},
		{name: "чужое бронирование", booking: newBooking(), now: at(10, 0), req: &Request{UserID: 8, BookingID: 5, Code: "ABCD1234"}, wantErr: ErrAccessDenied, wantMetric: "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, metrics := setup(tt.booking, tt.now)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.markedAt, "состояние не меняется")
			assert.Equal(t, []string{tt.wantMetric}, metrics.results)
		})
	}
}

func TestExecute_NoShowReleasedBeforeCheckIn(t *testing.T) {
	b := newBooking()
	uc, repo, metrics, sweeper := setupWithPolicy(b, at(10, 20), scheduling.NewLifecyclePolicy(30, 15, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"})
	assert.ErrorIs(t, err, ErrBookingNotActive)
	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, domain.StatusReleased, b.Status)
	assert.Nil(t, repo.markedAt)
	assert.Equal(t, []string{"rejected"}, metrics.results)
}

// Порог освобождения дольше бронирования: окно закрывается концом бронирования
func TestExecute_WindowEdgeWithLongThreshold(t *testing.T) {
	policy := scheduling.NewLifecyclePolicy(30, 120, time.UTC)

	t.Run("последняя минута окна", func(t *testing.T) {
		uc, repo, _, _ := setupWithPolicy(newBooking(), at(11, 0), policy)

		_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"})
		assert.NoError(t, err)
		assert.NotNil(t, repo.markedAt)
	})

	t.Run("слишком поздно", func(t *testing.T) {
		uc, repo, metrics, _ := setupWithPolicy(newBooking(), at(11, 1), policy)

		_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"})
		assert.ErrorIs(t, err, ErrTooLate)
		assert.Nil(t, repo.markedAt)
		assert.Equal(t, []string{"too_late"}, metrics.results)
	})
}

func TestExecute_PrivilegedUser(t *testing.T) {
	uc, _, _ := setup(newBooking(), at(10, 5))

	booking, err := uc.Execute(context.Background(), &Request{UserID: 1, BookingID: 5, Code: "ABCD1234"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), booking.UserID)
}

func TestExecute_ConcurrentRelease(t *testing.T) {
	uc, repo, _ := setup(newBooking(), at(10, 5))
	repo.markErr = bookingRepo.ErrCannotCheckIn

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 5, Code: "ABCD1234"})
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := setup(newBooking(), at(10, 0))

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 5, Code: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 6, Code: "ABCD1234"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
