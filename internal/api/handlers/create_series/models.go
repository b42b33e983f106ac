package create_series

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	bookingModels "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	createSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_series"
)

// CreateSeriesRequest HTTP request model
// Одиночная бронь - серия из одного повторения
type CreateSeriesRequest struct {
	RoomID        int64   `json:"roomId" validate:"required,gt=0"`
	StartDate     string  `json:"startDate" validate:"required"` // "2026-03-10"
	StartTime     string  `json:"startTime" validate:"required"` // "10:00"
	DurationHours float64 `json:"durationHours" validate:"gt=0,lte=24"`
	Occurrences   int     `json:"occurrences" validate:"min=0"` // 0 - одно повторение
	MinCapacity   int     `json:"minCapacity" validate:"min=0"`
	Equipment     []int64 `json:"equipment" validate:"omitempty,dive,gt=0"`
}

// SeriesResponse HTTP response model
type SeriesResponse struct {
	SeriesCode  string                          `json:"seriesCode"`
	Bookings    []bookingModels.BookingResponse `json:"bookings"`
	Occurrences []handlers.OccurrenceResponse   `json:"occurrences"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSeriesRequest) ToUseCaseRequest(userID int64) (*createSeries.Request, error) {
	startDate, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}

	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	occurrences := r.Occurrences
	if occurrences == 0 {
		occurrences = 1
	}

	return &createSeries.Request{
		UserID:        userID,
		RoomID:        r.RoomID,
		StartDate:     startDate,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
		Occurrences:   occurrences,
		MinCapacity:   r.MinCapacity,
		Equipment:     r.Equipment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSeries.Response) *SeriesResponse {
	return &SeriesResponse{
		SeriesCode:  resp.SeriesCode,
		Bookings:    bookingModels.FromDomainBookingList(resp.Bookings),
		Occurrences: handlers.FromOccurrences(resp.Occurrences),
	}
}
