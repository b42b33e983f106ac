package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

// Исходное здание и два соседних: в 500 м и в 50 м (по широте)
func campus() []*domain.Building {
	return []*domain.Building{
		{ID: 1, Name: "Главный", Latitude: ptr.Ptr(55.0), Longitude: ptr.Ptr(37.0)},
		{ID: 2, Name: "Дальний", Latitude: ptr.Ptr(55.0045), Longitude: ptr.Ptr(37.0)},
		{ID: 3, Name: "Ближний", Latitude: ptr.Ptr(55.00045), Longitude: ptr.Ptr(37.0)},
	}
}

func TestFindAlternative_NearestBuildingFirst(t *testing.T) {
	original := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}
	far := &domain.Room{ID: 20, BuildingID: 2, Capacity: 10, IsActive: true}
	nearTooSmall := &domain.Room{ID: 30, BuildingID: 3, Capacity: 5, IsActive: true}

	snap := &Snapshot{
		Rooms:     []*domain.Room{original, far, nearTooSmall},
		Buildings: campus(),
		Bookings:  []*domain.Booking{booking(1, original.ID, testDate, "10:00", 1)},
	}

	got, err := FindAlternative(snap, original, slot(testDate, "10:00", 1), Criteria{MinCapacity: 8})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, far.ID, got.ID)
}

func TestFindAlternative_StopsAtFirstBuildingWithMatch(t *testing.T) {
	original := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}
	farTightFit := &domain.Room{ID: 20, BuildingID: 2, Capacity: 10, IsActive: true}
	nearLarge := &domain.Room{ID: 30, BuildingID: 3, Capacity: 50, IsActive: true}
	nearLarger := &domain.Room{ID: 31, BuildingID: 3, Capacity: 80, IsActive: true}

	snap := &Snapshot{
		Rooms:     []*domain.Room{original, farTightFit, nearLarger, nearLarge},
		Buildings: campus(),
		Bookings:  []*domain.Booking{booking(1, original.ID, testDate, "10:00", 1)},
	}

	got, err := FindAlternative(snap, original, slot(testDate, "10:00", 1), Criteria{MinCapacity: 10})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, nearLarge.ID, got.ID)
}

func TestFindAlternative_OriginBuildingFirst(t *testing.T) {
	original := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}
	sameBuilding := &domain.Room{ID: 2, BuildingID: 1, Capacity: 30, IsActive: true}
	near := &domain.Room{ID: 30, BuildingID: 3, Capacity: 10, IsActive: true}

	snap := &Snapshot{
		Rooms:     []*domain.Room{original, near, sameBuilding},
		Buildings: campus(),
		Bookings:  []*domain.Booking{booking(1, original.ID, testDate, "10:00", 1)},
	}

	got, err := FindAlternative(snap, original, slot(testDate, "10:00", 1), Criteria{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sameBuilding.ID, got.ID)
}

func TestFindAlternative_Filters(t *testing.T) {
	original := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}
	inactive := &domain.Room{ID: 2, BuildingID: 1, Capacity: 10, IsActive: false, EquipmentIDs: []int64{1, 2}}
	noProjector := &domain.Room{ID: 3, BuildingID: 1, Capacity: 10, IsActive: true, EquipmentIDs: []int64{2}}
	busy := &domain.Room{ID: 4, BuildingID: 1, Capacity: 10, IsActive: true, EquipmentIDs: []int64{1, 2}}
	suitable := &domain.Room{ID: 5, BuildingID: 1, Capacity: 20, IsActive: true, EquipmentIDs: []int64{2, 1, 3}}

	snap := &Snapshot{
		Rooms:     []*domain.Room{original, inactive, noProjector, busy, suitable},
		Buildings: campus(),
		Bookings: []*domain.Booking{
			booking(1, original.ID, testDate, "10:00", 1),
			booking(2, busy.ID, testDate, "10:30", 1),
		},
	}

	got, err := FindAlternative(snap, original, slot(testDate, "10:00", 1), Criteria{MinCapacity: 10, Equipment: []int64{1}})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, suitable.ID, got.ID)
}

func TestFindAlternative_CombinationOccupancyExcludesCandidate(t *testing.T) {
	union, m1, m2, _ := combinationRooms()
	original := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}

	snap := &Snapshot{
		Rooms:     []*domain.Room{original, union, m1, m2},
		Buildings: campus(),
		Bookings: []*domain.Booking{
			booking(1, original.ID, testDate, "10:00", 1),
			booking(2, m1.ID, testDate, "10:00", 1),
		},
	}

	got, err := FindAlternative(snap, original, slot(testDate, "10:00", 1), Criteria{MinCapacity: 10})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m2.ID, got.ID, "union занята через участницу, m1 занята напрямую")
}

func TestFindAlternative_MissingCoordinatesKeepOrder(t *testing.T) {
	buildings := []*domain.Building{
		{ID: 1, Latitude: ptr.Ptr(55.0), Longitude: ptr.Ptr(37.0)},
		{ID: 2},
		{ID: 3, Latitude: ptr.Ptr(55.00045), Longitude: ptr.Ptr(37.0)},
	}
	original := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}
	unlocated := &domain.Room{ID: 20, BuildingID: 2, Capacity: 10, IsActive: true}
	near := &domain.Room{ID: 30, BuildingID: 3, Capacity: 10, IsActive: true}

	snap := &Snapshot{
		Rooms:     []*domain.Room{original, unlocated, near},
		Buildings: buildings,
		Bookings:  []*domain.Booking{booking(1, original.ID, testDate, "10:00", 1)},
	}

	assert.Equal(t, []int64{1, 2, 3}, orderBuildings(snap, 1))

	got, err := FindAlternative(snap, original, slot(testDate, "10:00", 1), Criteria{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, unlocated.ID, got.ID)
}

// Здание без координат разрывает сравнение: дальнее здание перед ним остается раньше ближнего после него
func TestOrderBuildings_UnlocatedBuildingSplitsOrder(t *testing.T) {
	buildings := campus()
	snap := &Snapshot{Buildings: []*domain.Building{buildings[0], buildings[1], {ID: 4}, buildings[2]}}

	assert.Equal(t, []int64{1, 2, 4, 3}, orderBuildings(snap, 1))

	snap.Buildings = []*domain.Building{buildings[0], buildings[1], buildings[2], {ID: 4}}
	assert.Equal(t, []int64{1, 3, 2, 4}, orderBuildings(snap, 1))
}

func TestFindAlternative_NoneFound(t *testing.T) {
	original := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}
	small := &domain.Room{ID: 2, BuildingID: 2, Capacity: 4, IsActive: true}

	snap := &Snapshot{
		Rooms:     []*domain.Room{original, small},
		Buildings: campus(),
	}

	got, err := FindAlternative(snap, original, slot(testDate, "10:00", 1), Criteria{MinCapacity: 10})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSameBuildingPolicy_DoesNotFanOut(t *testing.T) {
	prior := &domain.Room{ID: 1, BuildingID: 1, Capacity: 10, IsActive: true}
	smaller := &domain.Room{ID: 2, BuildingID: 1, Capacity: 8, IsActive: true}
	otherBuilding := &domain.Room{ID: 30, BuildingID: 3, Capacity: 10, IsActive: true}

	snap := &Snapshot{
		Rooms:     []*domain.Room{prior, smaller, otherBuilding},
		Buildings: campus(),
		Bookings:  []*domain.Booking{booking(1, prior.ID, testDate, "10:00", 1)},
	}

	got, err := SameBuildingPolicy{}.Substitute(snap, prior, slot(testDate, "10:00", 1), Criteria{MinCapacity: prior.Capacity})
	require.NoError(t, err)
	assert.Nil(t, got)
}
