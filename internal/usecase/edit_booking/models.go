package edit_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	UserID        int64            // ID пользователя, выполняющего изменение
	BookingID     int64            // ID бронирования
	Date          time.Time        // Новая дата
	StartTime     types.TimeString // Новое время начала
	DurationHours float64          // Новая длительность в часах
}
