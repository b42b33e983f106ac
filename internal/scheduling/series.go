package scheduling

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// SeriesRequest параметры еженедельной серии
type SeriesRequest struct {
	AnchorRoom  *domain.Room
	Slot        Slot // дата первого повторения, время начала и длительность
	Occurrences int
	Criteria    Criteria
}

// BookingTemplate общие поля бронирований серии
type BookingTemplate struct {
	UserID        int64
	StartTime     types.TimeString
	DurationHours float64
}

// PlanSeries раскладывает серию по неделям: повторение i приходится на startDate + 7*i дней
// Для каждого повторения: исходная комната, замена или конфликт
func PlanSeries(snap *Snapshot, req SeriesRequest) ([]domain.Occurrence, error) {
	if req.AnchorRoom == nil {
		return nil, fmt.Errorf("%w: anchor room is required", ErrInvalidSlot)
	}
	if req.Occurrences <= 0 {
		return nil, fmt.Errorf("%w: occurrences must be positive", ErrInvalidSlot)
	}
	if _, _, err := req.Slot.Interval(); err != nil {
		return nil, err
	}

	policy := NearestBuildingPolicy{}
	plan := make([]domain.Occurrence, 0, req.Occurrences)

	for i := 0; i < req.Occurrences; i++ {
		slot := req.Slot.WithDate(req.Slot.Date.AddDate(0, 0, domain.DaysInWeek*i))

		occurrence, err := resolveOccurrence(snap, req.AnchorRoom, slot, req.Criteria, policy)
		if err != nil {
			return nil, err
		}
		plan = append(plan, occurrence)
	}

	return plan, nil
}

// PlanExtension планирует продление серии на weeks недель после последнего повторения
// Каждая неделя сначала пробует комнату предыдущей недели, затем замену по policy
// с вместимостью не меньше, чем у предыдущей комнаты. Первая неразрешенная неделя
// прерывает планирование
func PlanExtension(snap *Snapshot, series []*domain.Booking, weeks int, policy SubstitutePolicy) ([]domain.Occurrence, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("%w: weeks must be positive", ErrInvalidSlot)
	}

	latest := latestActive(series)
	if latest == nil {
		return nil, ErrEmptySeries
	}

	prior, ok := snap.Room(latest.RoomID)
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrRoomUnknown, latest.RoomID)
	}

	base := Slot{
		Date:          latest.BookingDate,
		StartTime:     latest.StartTime,
		DurationHours: latest.DurationHours,
	}
	if _, _, err := base.Interval(); err != nil {
		return nil, err
	}

	plan := make([]domain.Occurrence, 0, weeks)
	for week := 1; week <= weeks; week++ {
		slot := base.WithDate(base.Date.AddDate(0, 0, domain.DaysInWeek*week))

		occurrence, err := resolveOccurrence(snap, prior, slot, Criteria{MinCapacity: prior.Capacity}, policy)
		if err != nil {
			return nil, err
		}
		plan = append(plan, occurrence)

		if !occurrence.IsResolved() {
			return plan, fmt.Errorf("%w: %s", ErrUnresolvedOccurrence, slot.Date.Format(domain.DateFormat))
		}
		prior = occurrence.Room
	}

	return plan, nil
}

// CommitSeries превращает план в бронирования с общим кодом серии
// План с хотя бы одним конфликтом отклоняется целиком
func CommitSeries(plan []domain.Occurrence, seriesCode string, tmpl BookingTemplate) ([]*domain.Booking, error) {
	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: empty plan", ErrInvalidSlot)
	}

	for _, occurrence := range plan {
		if !occurrence.IsResolved() {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedOccurrence, occurrence.Date.Format(domain.DateFormat))
		}
	}

	bookings := make([]*domain.Booking, 0, len(plan))
	for _, occurrence := range plan {
		bookings = append(bookings, &domain.Booking{
			RoomID:        occurrence.Room.ID,
			UserID:        tmpl.UserID,
			BookingDate:   domain.DateOnly(occurrence.Date),
			StartTime:     tmpl.StartTime,
			DurationHours: tmpl.DurationHours,
			Status:        domain.StatusActive,
			BookingCode:   seriesCode,
		})
	}

	return bookings, nil
}

// HasConflicts проверяет, есть ли в плане неразрешенные повторения
func HasConflicts(plan []domain.Occurrence) bool {
	for _, occurrence := range plan {
		if !occurrence.IsResolved() {
			return true
		}
	}
	return false
}

// resolveOccurrence проверяет исходную комнату и при занятости ищет замену
func resolveOccurrence(snap *Snapshot, room *domain.Room, slot Slot, criteria Criteria, policy SubstitutePolicy) (domain.Occurrence, error) {
	free, err := snap.IsRoomFree(room, slot, 0)
	if err != nil {
		return domain.Occurrence{}, err
	}
	if free {
		return domain.Occurrence{Date: slot.Date, Room: room, Status: domain.OccurrenceOK}, nil
	}

	substitute, err := policy.Substitute(snap, room, slot, criteria)
	if err != nil {
		return domain.Occurrence{}, err
	}
	if substitute != nil {
		return domain.Occurrence{Date: slot.Date, Room: substitute, Status: domain.OccurrenceAlternative}, nil
	}

	return domain.Occurrence{Date: slot.Date, Status: domain.OccurrenceConflict}, nil
}

// latestActive возвращает активное бронирование серии с самой поздней датой
func latestActive(series []*domain.Booking) *domain.Booking {
	active := make([]*domain.Booking, 0, len(series))
	for _, b := range series {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	if len(active) == 0 {
		return nil
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].BookingDate.Before(active[j].BookingDate)
	})
	return active[len(active)-1]
}
