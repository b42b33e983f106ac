package models

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// RoomsFilter фильтр списка комнат; нулевые значения не ограничивают выборку
type RoomsFilter struct {
	BuildingID      *int64
	MinCapacity     int
	Equipment       []int64
	IncludeInactive bool
}

// Matches проверяет комнату на соответствие фильтру
func (f *RoomsFilter) Matches(room *domain.Room) bool {
	if !f.IncludeInactive && !room.IsActive {
		return false
	}
	if f.BuildingID != nil && room.BuildingID != *f.BuildingID {
		return false
	}
	if room.Capacity < f.MinCapacity {
		return false
	}
	return room.HasEquipment(f.Equipment)
}

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	BuildingID         int64   `json:"buildingId"`
	Capacity           int     `json:"capacity"`
	Floor              int     `json:"floor"`
	EquipmentIDs       []int64 `json:"equipmentIds"`
	IsActive           bool    `json:"isActive"`
	SeatingArrangement string  `json:"seatingArrangement,omitempty"`
	Role               string  `json:"role"` // standalone, union, member
	CombinationID      *int64  `json:"combinationId,omitempty"`
}

// BuildingResponse ответ с данными здания
type BuildingResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// EquipmentResponse ответ с данными оборудования
type EquipmentResponse struct {
	ID     int64  `json:"id"`
	NameRu string `json:"nameRu"`
	NameEn string `json:"nameEn"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	equipment := r.EquipmentIDs
	if equipment == nil {
		equipment = []int64{}
	}

	resp := &RoomResponse{
		ID:                 r.ID,
		Name:               r.Name,
		BuildingID:         r.BuildingID,
		Capacity:           r.Capacity,
		Floor:              r.Floor,
		EquipmentIDs:       equipment,
		IsActive:           r.IsActive,
		SeatingArrangement: r.SeatingArrangement,
		Role:               r.Role().String(),
	}
	if r.Combination != nil {
		id := r.Combination.ID
		resp.CombinationID = &id
	}
	return resp
}

// FromDomainBuilding конвертирует domain модель в DTO
func FromDomainBuilding(b *domain.Building) BuildingResponse {
	return BuildingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
	}
}

// FromDomainEquipment конвертирует domain модель в DTO
func FromDomainEquipment(e *domain.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:     e.ID,
		NameRu: e.NameRu,
		NameEn: e.NameEn,
	}
}
