package booking

import (
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// bookingColumns порядок колонок совпадает с порядком полей в scanBooking
var bookingColumns = []string{
	"id",
	"room_id",
	"user_id",
	"booking_date",
	"start_time",
	"duration_hours",
	"status",
	"is_checked_in",
	"checked_in_at",
	"booking_code",
	"cancelled_at",
	"released_at",
	"created_at",
	"updated_at",
}
