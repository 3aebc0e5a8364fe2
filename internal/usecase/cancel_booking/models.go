package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Request модель запроса на отмену бронирования.
// Бронирование адресуется либо по ID (админский доступ), либо по
// токену (публичный доступ) - заполняется ровно одно из полей.
type Request struct {
	BookingID int64
	Token     string

	Reason string
	Actor  domain.Actor
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID     int64
	Status string

	VenueID   int64
	StaffID   *int64
	ServiceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int

	CancellationReason *string
	CancelledAt        *time.Time
	UpdatedAt          time.Time
}
