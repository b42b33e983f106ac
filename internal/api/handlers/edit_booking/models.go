package edit_booking

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	editBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/edit_booking"
)

// EditBookingRequest HTTP request model; комната и код серии не меняются
type EditBookingRequest struct {
	BookingDate   string  `json:"bookingDate" validate:"required"` // "2026-03-10"
	StartTime     string  `json:"startTime" validate:"required"`   // "10:00"
	DurationHours float64 `json:"durationHours" validate:"gt=0,lte=24"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditBookingRequest) ToUseCaseRequest(userID, bookingID int64) (*editBooking.Request, error) {
	date, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &editBooking.Request{
		UserID:        userID,
		BookingID:     bookingID,
		Date:          date,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
	}, nil
}
