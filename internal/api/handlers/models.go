package handlers

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	catalogModels "github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

// OccurrenceResponse повторение серии в плане
type OccurrenceResponse struct {
	Date   string                      `json:"date"`
	Status string                      `json:"status"` // ok, alternative, conflict
	Room   *catalogModels.RoomResponse `json:"room,omitempty"`
}

// FromOccurrences конвертирует план серии в DTO
func FromOccurrences(plan []domain.Occurrence) []OccurrenceResponse {
	result := make([]OccurrenceResponse, 0, len(plan))
	for _, occ := range plan {
		result = append(result, OccurrenceResponse{
			Date:   occ.Date.Format(domain.DateFormat),
			Status: string(occ.Status),
			Room:   catalogModels.FromDomainRoom(occ.Room),
		})
	}
	return result
}
