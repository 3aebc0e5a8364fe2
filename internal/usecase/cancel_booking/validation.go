package cancel_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 && req.Token == "" {
		return fmt.Errorf("%w: bookingID or token is required", ErrInvalidInput)
	}

	if req.BookingID > 0 && req.Token != "" {
		return fmt.Errorf("%w: bookingID and token are mutually exclusive", ErrInvalidInput)
	}

	return nil
}
