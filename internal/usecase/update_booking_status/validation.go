package update_booking_status

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.NewStatus) == "" {
		return fmt.Errorf("%w: newStatus is required", ErrInvalidInput)
	}

	return nil
}
