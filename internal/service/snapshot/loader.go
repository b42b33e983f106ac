package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
)

// Loader собирает снимок каталога и активных бронирований для движка планирования
type Loader struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
}

// NewLoader создает новый загрузчик снимков
func NewLoader(catalogRepo CatalogRepository, bookingRepo BookingRepository) *Loader {
	return &Loader{catalogRepo: catalogRepo, bookingRepo: bookingRepo}
}

// Load загружает все комнаты, здания и активные бронирования на указанные даты
// Внутри транзакции бронирования блокируются репозиторием (FOR UPDATE)
func (l *Loader) Load(ctx context.Context, dates []time.Time) (*scheduling.Snapshot, error) {
	rooms, err := l.catalogRepo.GetRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: rooms: %v", ErrLoadCatalog, err)
	}

	buildings, err := l.catalogRepo.GetBuildings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: buildings: %v", ErrLoadCatalog, err)
	}

	bookings, err := l.bookingRepo.GetActiveByDates(ctx, nil, uniqueDates(dates))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadBookings, err)
	}

	return &scheduling.Snapshot{
		Rooms:     rooms,
		Buildings: buildings,
		Bookings:  bookings,
	}, nil
}

// WeeklyDates возвращает count дат с шагом в неделю, начиная с first
func WeeklyDates(first time.Time, count int) []time.Time {
	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, domain.DateOnly(first.AddDate(0, 0, domain.DaysInWeek*i)))
	}
	return dates
}

// uniqueDates убирает повторы и сортирует даты
func uniqueDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := domain.DateOnly(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result
}
