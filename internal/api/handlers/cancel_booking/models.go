package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	cancelBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`

	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *cancelBookingUC.Response) *CancelBookingResponse {
	result := &CancelBookingResponse{
		ID:                 resp.ID,
		Status:             resp.Status,
		BookingDate:        resp.BookingDate.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		CancellationReason: resp.CancellationReason,
	}

	if resp.CancelledAt != nil {
		cancelledStr := resp.CancelledAt.Format(time.RFC3339)
		result.CancelledAt = &cancelledStr
	}

	return result
}
