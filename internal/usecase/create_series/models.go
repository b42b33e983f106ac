package create_series

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request модель запроса на создание серии (одиночная бронь = одно повторение)
type Request struct {
	UserID        int64            // ID владельца
	RoomID        int64            // ID исходной комнаты
	StartDate     time.Time        // Дата первого повторения
	StartTime     types.TimeString // Время начала, "HH:MM"
	DurationHours float64          // Длительность в часах
	Occurrences   int              // Количество еженедельных повторений
	MinCapacity   int              // Минимальная вместимость замены (0 = вместимость исходной комнаты)
	Equipment     []int64          // Требуемое оборудование замены
}

// Response модель ответа с созданной серией
type Response struct {
	SeriesCode  string
	Bookings    []*domain.Booking
	Occurrences []domain.Occurrence
}
