package edit_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationHours <= 0 || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be in (0, %.0f] hours", ErrInvalidInput, domain.MaxDurationHours)
	}

	return nil
}

// validateNotStarted проверяет, что новое время еще не наступило
func validateNotStarted(req *Request, now time.Time, loc *time.Location) error {
	start, err := req.StartTime.On(req.Date, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if start.Before(now) {
		return ErrInvalidDate
	}

	return nil
}
