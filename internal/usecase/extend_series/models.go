package extend_series

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// Request модель запроса на продление серии
type Request struct {
	UserID     int64  // ID пользователя, выполняющего продление
	SeriesCode string // Код серии
	Weeks      int    // Количество добавляемых недель
}

// Response модель ответа с добавленными бронированиями
type Response struct {
	SeriesCode  string
	Bookings    []*domain.Booking
	Occurrences []domain.Occurrence
}
