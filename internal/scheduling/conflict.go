package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// ConflictSet множество комнат, которые проверяются на занятость вместе
type ConflictSet map[int64]struct{}

// NewConflictSet строит множество конфликтов для комнаты:
//   - отдельная комната: только она сама
//   - объединенная комната: она и все участницы комбинации
//   - участница: она и объединенная комната, соседние участницы свободны
func NewConflictSet(room *domain.Room) ConflictSet {
	set := ConflictSet{room.ID: {}}

	switch room.Role() {
	case domain.RoleUnion:
		for _, id := range room.Combination.MemberRoomIDs {
			set[id] = struct{}{}
		}
	case domain.RoleMember:
		set[room.Combination.UnionRoomID] = struct{}{}
	case domain.RoleStandalone:
	}

	return set
}

// Contains проверяет вхождение комнаты в множество
func (s ConflictSet) Contains(roomID int64) bool {
	_, ok := s[roomID]
	return ok
}

// IDs возвращает отсортированный список комнат множества
func (s ConflictSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Slot запрашиваемый интервал времени на конкретную дату
type Slot struct {
	Date          time.Time
	StartTime     types.TimeString
	DurationHours float64
}

// Interval возвращает полуинтервал [start, end) в минутах от полуночи
func (s Slot) Interval() (int, int, error) {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if start >= types.MinutesInDay {
		return 0, 0, fmt.Errorf("%w: start time %s is not within a day", ErrInvalidSlot, s.StartTime)
	}
	if s.DurationHours <= 0 {
		return 0, 0, fmt.Errorf("%w: duration must be positive", ErrInvalidSlot)
	}

	end := start + domain.HoursToMinutes(s.DurationHours)
	if end <= start || end > types.MinutesInDay {
		return 0, 0, fmt.Errorf("%w: booking must end within the same day", ErrInvalidSlot)
	}

	return start, end, nil
}

// WithDate возвращает тот же слот на другую дату
func (s Slot) WithDate(date time.Time) Slot {
	s.Date = date
	return s
}

// Overlaps проверяет пересечение полуинтервалов [s1,e1) и [s2,e2)
// Бронирования встык не пересекаются
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// IsOccupied проверяет, пересекается ли слот с активным бронированием любой комнаты множества
// excludeBookingID > 0 исключает бронирование из проверки (редактирование на месте)
func IsOccupied(set ConflictSet, bookings []*domain.Booking, slot Slot, excludeBookingID int64) (bool, error) {
	start, end, err := slot.Interval()
	if err != nil {
		return false, err
	}

	for _, b := range bookings {
		if !b.IsActive() || !set.Contains(b.RoomID) {
			continue
		}
		if excludeBookingID > 0 && b.ID == excludeBookingID {
			continue
		}
		if !sameDate(b.BookingDate, slot.Date) {
			continue
		}

		bStart, err := b.StartTime.Minutes()
		if err != nil {
			return false, fmt.Errorf("booking id=%d: %w", b.ID, err)
		}
		bEnd := bStart + b.DurationMinutes()

		if Overlaps(start, end, bStart, bEnd) {
			return true, nil
		}
	}

	return false, nil
}

// sameDate сравнивает только календарные даты
func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
