package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Request модель запроса на перенос бронирования.
// Бронирование адресуется либо по ID (админский доступ), либо по
// токену (публичный доступ) - заполняется ровно одно из полей.
type Request struct {
	BookingID int64
	Token     string

	NewDate      time.Time
	NewStartTime types.TimeString
	// NewDurationMinutes = 0 сохраняет текущую длительность
	NewDurationMinutes int

	Actor domain.Actor
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID     int64
	Status string

	VenueID   int64
	StaffID   *int64
	ServiceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int

	UpdatedAt time.Time
}
