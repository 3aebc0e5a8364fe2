package update_booking_status

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	updateStatusUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	ID        int64  `json:"id"`
	OldStatus string `json:"oldStatus"`
	Status    string `json:"status"`

	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *updateStatusUC.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		ID:          resp.ID,
		OldStatus:   resp.OldStatus,
		Status:      resp.Status,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		UpdatedAt:   resp.UpdatedAt,
	}
}
