package reschedule_booking

import (
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 && req.Token == "" {
		return fmt.Errorf("%w: bookingID or token is required", ErrInvalidInput)
	}

	if req.BookingID > 0 && req.Token != "" {
		return fmt.Errorf("%w: bookingID and token are mutually exclusive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}

	if req.NewDurationMinutes != 0 &&
		(req.NewDurationMinutes < domain.MinDurationMinutes || req.NewDurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: newDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return nil
}

// slotWithinOpeningHours проверяет, что [start, start+duration)
// целиком помещается в одно из окон работы
func slotWithinOpeningHours(intervals []domain.OpenInterval, startMinute, durationMinutes int) bool {
	for _, interval := range intervals {
		if interval.Contains(startMinute, startMinute+durationMinutes) {
			return true
		}
	}
	return false
}
