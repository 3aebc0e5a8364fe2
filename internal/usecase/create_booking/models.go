package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	VenueID   int64
	StaffID   *int64 // опционально: конкретный сотрудник
	ServiceID int64

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int

	CustomerID      *int64 // nil = анонимное бронирование
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SpecialRequests *string

	Actor domain.Actor
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID    int64
	Token string // единственный credential для анонимного управления бронированием

	VenueID   int64
	StaffID   *int64
	ServiceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int
	Status          string

	CustomerID      *int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SpecialRequests *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
