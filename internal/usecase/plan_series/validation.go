package plan_series

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxOccurrences int) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationHours <= 0 || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be in (0, %.0f] hours", ErrInvalidInput, domain.MaxDurationHours)
	}

	if req.Occurrences <= 0 || req.Occurrences > maxOccurrences {
		return fmt.Errorf("%w: occurrences must be in [1, %d]", ErrInvalidInput, maxOccurrences)
	}

	if req.MinCapacity < 0 {
		return fmt.Errorf("%w: minCapacity must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateNotStarted проверяет, что первое повторение еще не началось
func validateNotStarted(req *Request, now time.Time, loc *time.Location) error {
	start, err := req.StartTime.On(req.StartDate, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if start.Before(now) {
		return ErrInvalidDate
	}

	return nil
}
