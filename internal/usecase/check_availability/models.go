package check_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request модель запроса проверки занятости комнаты
type Request struct {
	RoomID        int64            // ID запрашиваемой комнаты
	Date          time.Time        // Дата (без времени)
	StartTime     types.TimeString // Время начала, "HH:MM"
	DurationHours float64          // Длительность в часах
	MinCapacity   int              // Минимальная вместимость замены (0 = вместимость исходной комнаты)
	Equipment     []int64          // Требуемое оборудование замены
}

// Response модель ответа
type Response struct {
	Room            *domain.Room
	Available       bool
	ConflictRoomIDs []int64      // Комнаты, проверенные вместе с запрошенной
	Alternative     *domain.Room // Замена, если комната занята; nil если замены нет
}
