package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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

	if req.MinCapacity < 0 {
		return fmt.Errorf("%w: minCapacity must not be negative", ErrInvalidInput)
	}

	return nil
}
