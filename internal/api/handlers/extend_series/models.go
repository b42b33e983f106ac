package extend_series

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	bookingModels "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	extendSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/extend_series"
)

// ExtendSeriesRequest HTTP request model
type ExtendSeriesRequest struct {
	Weeks int `json:"weeks" validate:"required,min=1"`
}

// ExtendSeriesResponse HTTP response model с добавленными неделями
type ExtendSeriesResponse struct {
	SeriesCode  string                          `json:"seriesCode"`
	Bookings    []bookingModels.BookingResponse `json:"bookings"`
	Occurrences []handlers.OccurrenceResponse   `json:"occurrences"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *extendSeries.Response) *ExtendSeriesResponse {
	return &ExtendSeriesResponse{
		SeriesCode:  resp.SeriesCode,
		Bookings:    bookingModels.FromDomainBookingList(resp.Bookings),
		Occurrences: handlers.FromOccurrences(resp.Occurrences),
	}
}
