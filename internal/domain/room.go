package domain

import "github.com/m04kA/SMC-RoomBookingService/pkg/geo"

// MaxCombinationMembers максимальное число комнат-участниц комбинации
const MaxCombinationMembers = 3

// RoomRole роль комнаты относительно комбинации
type RoomRole int

const (
	// RoleStandalone комната не входит в комбинацию
	RoleStandalone RoomRole = iota
	// RoleUnion объединенная комната: её бронь занимает всю группу
	RoleUnion
	// RoleMember часть комбинации: бронируется отдельно, но исключает объединенную комнату
	RoleMember
)

func (r RoomRole) String() string {
	switch r {
	case RoleUnion:
		return "union"
	case RoleMember:
		return "member"
	default:
		return "standalone"
	}
}

// Combination группа из объединенной комнаты и до трех комнат-участниц
type Combination struct {
	ID            int64
	UnionRoomID   int64
	MemberRoomIDs []int64
}

// Room помещение, доступное для бронирования
type Room struct {
	ID                 int64
	Name               string
	BuildingID         int64
	Capacity           int
	Floor              int
	EquipmentIDs       []int64
	IsActive           bool
	SeatingArrangement string
	Combination        *Combination // nil - комната не входит в комбинацию
}

// Role определяет роль комнаты в комбинации
func (r *Room) Role() RoomRole {
	if r.Combination == nil {
		return RoleStandalone
	}
	if r.Combination.UnionRoomID == r.ID {
		return RoleUnion
	}
	for _, id := range r.Combination.MemberRoomIDs {
		if id == r.ID {
			return RoleMember
		}
	}
	return RoleStandalone
}

// HasEquipment возвращает true, если в комнате есть всё перечисленное оборудование
// Пустой список требований выполняется всегда
func (r *Room) HasEquipment(required []int64) bool {
	if len(required) == 0 {
		return true
	}

	available := make(map[int64]struct{}, len(r.EquipmentIDs))
	for _, id := range r.EquipmentIDs {
		available[id] = struct{}{}
	}

	for _, id := range required {
		if _, ok := available[id]; !ok {
			return false
		}
	}
	return true
}

// Building здание; координаты могут отсутствовать
type Building struct {
	ID        int64
	Name      string
	Latitude  *float64
	Longitude *float64
}

// Location возвращает координаты здания, если они заданы
func (b *Building) Location() (geo.Point, bool) {
	if b == nil || b.Latitude == nil || b.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *b.Latitude, Longitude: *b.Longitude}, true
}

// Equipment оборудование; используется только как фильтр при поиске комнат
type Equipment struct {
	ID     int64
	NameRu string
	NameEn string
}
