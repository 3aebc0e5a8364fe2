package update_booking_status

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID int64
	NewStatus string
	Reason    string

	Actor domain.Actor
}

// Response модель ответа со сменившимся статусом
type Response struct {
	ID        int64
	OldStatus string
	Status    string

	VenueID   int64
	StaffID   *int64
	ServiceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int

	UpdatedAt time.Time
}
