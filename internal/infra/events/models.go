package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// BookingEvent доменное событие жизненного цикла бронирования.
// Публикуется после фиксации транзакции; потребители - внешние контуры
// (уведомления, лояльность), движок на события не подписывается.
type BookingEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`

	BookingID   int64   `json:"bookingId"`
	VenueID     int64   `json:"venueId"`
	StaffID     *int64  `json:"staffId,omitempty"`
	ServiceID   int64   `json:"serviceId"`
	CustomerID  *int64  `json:"customerId,omitempty"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason,omitempty"`
}

// newBookingEvent собирает событие из бронирования
func newBookingEvent(eventType string, booking *domain.Booking, reason *string) BookingEvent {
	return BookingEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		OccurredAt:  time.Now().UTC(),
		BookingID:   booking.ID,
		VenueID:     booking.VenueID,
		StaffID:     booking.StaffID,
		ServiceID:   booking.ServiceID,
		CustomerID:  booking.CustomerID,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
		Status:      string(booking.Status),
		Reason:      reason,
	}
}
