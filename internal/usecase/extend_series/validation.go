package extend_series

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/snapshot"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxOccurrences int) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SeriesCode == "" {
		return fmt.Errorf("%w: seriesCode is required", ErrInvalidInput)
	}

	if req.Weeks <= 0 || req.Weeks > maxOccurrences {
		return fmt.Errorf("%w: weeks must be in [1, %d]", ErrInvalidInput, maxOccurrences)
	}

	return nil
}

// extensionDates возвращает даты новых недель после последнего активного повторения
func extensionDates(series []*domain.Booking, weeks int) []time.Time {
	var latest time.Time
	for _, b := range series {
		if b.IsActive() && b.BookingDate.After(latest) {
			latest = b.BookingDate
		}
	}
	if latest.IsZero() {
		return nil
	}

	return snapshot.WeeklyDates(latest.AddDate(0, 0, domain.DaysInWeek), weeks)
}
