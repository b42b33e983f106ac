package get_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// CheckInWindowResponse границы окна отметки в RFC3339
type CheckInWindowResponse struct {
	OpensAt  string `json:"opensAt"`
	ClosesAt string `json:"closesAt"`
}

// BookingDetailsResponse бронирование и окно отметки, если отметиться еще можно
type BookingDetailsResponse struct {
	models.BookingResponse
	CheckInWindow *CheckInWindowResponse `json:"checkInWindow,omitempty"`
}

// awaitingCheckIn восстанавливает доменную бронь из ответа, если она ждет отметки
func awaitingCheckIn(resp *models.BookingResponse) (*domain.Booking, bool) {
	if domain.BookingStatus(resp.Status) != domain.StatusActive || resp.IsCheckedIn {
		return nil, false
	}

	date, err := time.Parse(domain.DateFormat, resp.BookingDate)
	if err != nil {
		return nil, false
	}

	return &domain.Booking{
		ID:            resp.ID,
		RoomID:        resp.RoomID,
		BookingDate:   date,
		StartTime:     types.TimeString(resp.StartTime),
		DurationHours: resp.DurationHours,
		Status:        domain.StatusActive,
	}, true
}
