package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	rescheduleBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate            string `json:"newDate"`      // "2025-10-15"
	NewStartTime       string `json:"newStartTime"` // "10:00"
	NewDurationMinutes int    `json:"newDurationMinutes,omitempty"`
}

// Apply дополняет запрос usecase данными из тела запроса
func (r *RescheduleBookingRequest) Apply(req *rescheduleBookingUC.Request) error {
	date, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return fmt.Errorf("invalid newDate: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return fmt.Errorf("invalid newStartTime: %w", err)
	}

	req.NewDate = date
	req.NewStartTime = startTime
	req.NewDurationMinutes = r.NewDurationMinutes

	return nil
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`

	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *rescheduleBookingUC.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:              resp.ID,
		Status:          resp.Status,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		UpdatedAt:       resp.UpdatedAt,
	}
}
