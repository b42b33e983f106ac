package plan_series

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	catalogModels "github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
	planSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/plan_series"
)

// PlanSeriesRequest HTTP request model
type PlanSeriesRequest struct {
	RoomID        int64   `json:"roomId" validate:"required,gt=0"`
	StartDate     string  `json:"startDate" validate:"required"`
	StartTime     string  `json:"startTime" validate:"required"`
	DurationHours float64 `json:"durationHours" validate:"gt=0,lte=24"`
	Occurrences   int     `json:"occurrences" validate:"required,min=1"`
	MinCapacity   int     `json:"minCapacity" validate:"min=0"`
	Equipment     []int64 `json:"equipment" validate:"omitempty,dive,gt=0"`
}

// PlanResponse HTTP response model
type PlanResponse struct {
	Room         *catalogModels.RoomResponse   `json:"room"`
	HasConflicts bool                          `json:"hasConflicts"`
	Occurrences  []handlers.OccurrenceResponse `json:"occurrences"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PlanSeriesRequest) ToUseCaseRequest() (*planSeries.Request, error) {
	startDate, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}

	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &planSeries.Request{
		RoomID:        r.RoomID,
		StartDate:     startDate,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
		Occurrences:   r.Occurrences,
		MinCapacity:   r.MinCapacity,
		Equipment:     r.Equipment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *planSeries.Response) *PlanResponse {
	return &PlanResponse{
		Room:         catalogModels.FromDomainRoom(resp.Room),
		HasConflicts: resp.HasConflicts,
		Occurrences:  handlers.FromOccurrences(resp.Occurrences),
	}
}
