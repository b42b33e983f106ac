package domain

import (
	"math"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled" // терминальный
	StatusReleased  BookingStatus = "released"  // терминальный, выставляется автоматически
)

// Booking represents a room reservation for one date
type Booking struct {
	ID            int64
	RoomID        int64
	UserID        int64
	BookingDate   time.Time
	StartTime     types.TimeString
	DurationHours float64
	Status        BookingStatus
	IsCheckedIn   bool
	CheckedInAt   *time.Time
	BookingCode   string // код серии, общий для всех повторений одного запроса

	CancelledAt *time.Time
	ReleasedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsTerminal returns true for cancelled and released bookings
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusReleased
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanBeUpdated returns true if date/time/duration can be changed
func (b *Booking) CanBeUpdated() bool {
	return !b.IsTerminal() && !b.IsCheckedIn
}

// DurationMinutes длительность в минутах
func (b *Booking) DurationMinutes() int {
	return HoursToMinutes(b.DurationHours)
}

// ScheduledStart момент начала бронирования в указанном часовом поясе
func (b *Booking) ScheduledStart(loc *time.Location) (time.Time, error) {
	return b.StartTime.On(b.BookingDate, loc)
}

// HoursToMinutes переводит длительность в часах в минуты
func HoursToMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}

// DateOnly отбрасывает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID   int64
	Status   *BookingStatus // nil - все статусы
	FromDate *time.Time     // nil - без ограничения
}
