package scheduling

import (
	"sort"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/geo"
)

// Snapshot снимок каталога и бронирований, над которым работает движок
type Snapshot struct {
	Rooms     []*domain.Room
	Buildings []*domain.Building
	Bookings  []*domain.Booking
}

// Room ищет комнату по ID
func (s *Snapshot) Room(id int64) (*domain.Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Building ищет здание по ID
func (s *Snapshot) Building(id int64) (*domain.Building, bool) {
	for _, b := range s.Buildings {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// IsRoomFree проверяет, свободно ли множество конфликтов комнаты в указанный слот
func (s *Snapshot) IsRoomFree(room *domain.Room, slot Slot, excludeBookingID int64) (bool, error) {
	occupied, err := IsOccupied(NewConflictSet(room), s.Bookings, slot, excludeBookingID)
	if err != nil {
		return false, err
	}
	return !occupied, nil
}

// Criteria требования к замене
type Criteria struct {
	MinCapacity int
	Equipment   []int64
}

// SubstitutePolicy стратегия подбора замены для занятой комнаты
type SubstitutePolicy interface {
	Substitute(snap *Snapshot, original *domain.Room, slot Slot, criteria Criteria) (*domain.Room, error)
}

// NearestBuildingPolicy ищет замену по зданиям в порядке удаленности от исходного
// Поиск останавливается на первом здании, где нашлась хотя бы одна подходящая комната
type NearestBuildingPolicy struct{}

// Substitute реализует SubstitutePolicy
func (NearestBuildingPolicy) Substitute(snap *Snapshot, original *domain.Room, slot Slot, criteria Criteria) (*domain.Room, error) {
	for _, buildingID := range orderBuildings(snap, original.BuildingID) {
		room, err := bestFitInBuilding(snap, original, buildingID, slot, criteria)
		if err != nil {
			return nil, err
		}
		if room != nil {
			return room, nil
		}
	}
	return nil, nil
}

// SameBuildingPolicy ищет замену только в здании исходной комнаты
// Используется при продлении серии
type SameBuildingPolicy struct{}

// Substitute реализует SubstitutePolicy
func (SameBuildingPolicy) Substitute(snap *Snapshot, original *domain.Room, slot Slot, criteria Criteria) (*domain.Room, error) {
	return bestFitInBuilding(snap, original, original.BuildingID, slot, criteria)
}

// FindAlternative ищет замену для занятой комнаты по умолчанию ближайшим зданием
func FindAlternative(snap *Snapshot, original *domain.Room, slot Slot, criteria Criteria) (*domain.Room, error) {
	if _, _, err := slot.Interval(); err != nil {
		return nil, err
	}
	return NearestBuildingPolicy{}.Substitute(snap, original, slot, criteria)
}

// bestFitInBuilding выбирает свободную комнату с минимальной подходящей вместимостью
func bestFitInBuilding(snap *Snapshot, original *domain.Room, buildingID int64, slot Slot, criteria Criteria) (*domain.Room, error) {
	var best *domain.Room

	for _, room := range snap.Rooms {
		if room.BuildingID != buildingID || room.ID == original.ID {
			continue
		}
		if !room.IsActive || room.Capacity < criteria.MinCapacity {
			continue
		}
		if !room.HasEquipment(criteria.Equipment) {
			continue
		}

		free, err := snap.IsRoomFree(room, slot, 0)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}

		if best == nil || room.Capacity < best.Capacity ||
			(room.Capacity == best.Capacity && room.ID < best.ID) {
			best = room
		}
	}

	return best, nil
}

// orderBuildings возвращает здания: сначала исходное, затем по возрастанию расстояния
// Если у одного из пары зданий нет координат, их взаимный порядок не меняется.
// Здание без координат не сравнивается с соседями, поэтому дальнее здание перед ним
// остается раньше ближнего после него
func orderBuildings(snap *Snapshot, originID int64) []int64 {
	origin, _ := snap.Building(originID)
	originPoint, originLocated := origin.Location()

	type candidate struct {
		id       int64
		distance float64
		located  bool
	}

	others := make([]candidate, 0, len(snap.Buildings))
	for _, b := range snap.Buildings {
		if b.ID == originID {
			continue
		}
		c := candidate{id: b.ID}
		if p, ok := b.Location(); ok && originLocated {
			c.distance = geo.Distance(originPoint, p)
			c.located = true
		}
		others = append(others, c)
	}

	sort.SliceStable(others, func(i, j int) bool {
		if !others[i].located || !others[j].located {
			return false
		}
		return others[i].distance < others[j].distance
	})

	// Исходное здание проверяется первым
	ordered := make([]int64, 0, len(others)+1)
	ordered = append(ordered, originID)
	for _, c := range others {
		ordered = append(ordered, c.id)
	}
	return ordered
}
