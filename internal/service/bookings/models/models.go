package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	ActorID  int64      `json:"-"`
	UserID   int64      `json:"userId"`
	Status   *string    `json:"status,omitempty"`
	FromDate *time.Time `json:"fromDate,omitempty"`
}

// GetRoomScheduleRequest запрос расписания комнаты на дату
type GetRoomScheduleRequest struct {
	RoomID int64     `json:"roomId"`
	Date   time.Time `json:"date"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	RoomID        int64   `json:"roomId"`
	UserID        int64   `json:"userId"`
	BookingDate   string  `json:"bookingDate"` // "2026-03-10"
	StartTime     string  `json:"startTime"`   // "10:00"
	EndTime       string  `json:"endTime"`     // "11:30"
	DurationHours float64 `json:"durationHours"`
	Status        string  `json:"status"`
	IsCheckedIn   bool    `json:"isCheckedIn"`
	BookingCode   string  `json:"bookingCode"`

	CheckedInAt *string `json:"checkedInAt,omitempty"` // ISO 8601
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601
	ReleasedAt  *string `json:"releasedAt,omitempty"`  // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// SeriesResponse ответ с повторениями серии
type SeriesResponse struct {
	SeriesCode string            `json:"seriesCode"`
	OwnerID    int64             `json:"ownerId"`
	Bookings   []BookingResponse `json:"bookings"`
}

// RoomScheduleResponse расписание комнаты с учетом комбинаций
type RoomScheduleResponse struct {
	RoomID          int64             `json:"roomId"`
	Date            string            `json:"date"`
	ConflictRoomIDs []int64           `json:"conflictRoomIds"`
	Bookings        []BookingResponse `json:"bookings"`
}

// CancelSeriesResponse результат отмены серии
type CancelSeriesResponse struct {
	SeriesCode string `json:"seriesCode"`
	Cancelled  int64  `json:"cancelled"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		RoomID:        b.RoomID,
		UserID:        b.UserID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		DurationHours: b.DurationHours,
		Status:        string(b.Status),
		IsCheckedIn:   b.IsCheckedIn,
		BookingCode:   b.BookingCode,
		CheckedInAt:   formatTime(b.CheckedInAt),
		CancelledAt:   formatTime(b.CancelledAt),
		ReleasedAt:    formatTime(b.ReleasedAt),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	// Время окончания; для некорректных данных поле остается пустым
	if end, err := b.StartTime.AddMinutes(b.DurationMinutes()); err == nil {
		resp.EndTime = end.String()
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			result = append(result, *bookingResp)
		}
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusActive, domain.StatusCancelled, domain.StatusReleased:
		return s, nil
	}

	return "", ErrInvalidStatus
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
