package scheduling

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// LifecyclePolicy параметры отметки и автоосвобождения
type LifecyclePolicy struct {
	CheckInLead      time.Duration // за сколько до начала открывается окно отметки
	ReleaseThreshold time.Duration // через сколько после начала неотмеченная бронь освобождается
	Location         *time.Location
}

// NewLifecyclePolicy создает политику из значений в минутах
func NewLifecyclePolicy(leadMinutes, releaseThresholdMinutes int, loc *time.Location) LifecyclePolicy {
	if loc == nil {
		loc = time.UTC
	}
	return LifecyclePolicy{
		CheckInLead:      time.Duration(leadMinutes) * time.Minute,
		ReleaseThreshold: time.Duration(releaseThresholdMinutes) * time.Minute,
		Location:         loc,
	}
}

// CheckInWindow возвращает границы окна отметки [start - lead, start + duration]
func (p LifecyclePolicy) CheckInWindow(b *domain.Booking) (time.Time, time.Time, error) {
	start, err := b.ScheduledStart(p.location())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	opens := start.Add(-p.CheckInLead)
	closes := start.Add(time.Duration(b.DurationMinutes()) * time.Minute)
	return opens, closes, nil
}

// VerifyCheckIn проверяет, можно ли отметиться в бронировании в момент now с кодом code
// Состояние бронирования не меняется
func (p LifecyclePolicy) VerifyCheckIn(b *domain.Booking, code string, now time.Time) error {
	if !b.IsActive() {
		return ErrBookingNotActive
	}
	if b.IsCheckedIn {
		return ErrAlreadyCheckedIn
	}

	opens, closes, err := p.CheckInWindow(b)
	if err != nil {
		return err
	}
	if now.Before(opens) {
		return ErrCheckInTooEarly
	}
	if now.After(closes) {
		return ErrCheckInTooLate
	}

	if !strings.EqualFold(strings.TrimSpace(code), b.BookingCode) {
		return ErrCodeMismatch
	}

	return nil
}

// SweepReleases отбирает активные неотмеченные бронирования, начало которых было
// не менее ReleaseThreshold назад. Бронирования с некорректным временем пропускаются
func (p LifecyclePolicy) SweepReleases(bookings []*domain.Booking, now time.Time) []*domain.Booking {
	var released []*domain.Booking

	for _, b := range bookings {
		if !b.IsActive() || b.IsCheckedIn {
			continue
		}

		start, err := b.ScheduledStart(p.location())
		if err != nil {
			continue
		}

		if now.Sub(start) >= p.ReleaseThreshold {
			released = append(released, b)
		}
	}

	return released
}

func (p LifecyclePolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}
