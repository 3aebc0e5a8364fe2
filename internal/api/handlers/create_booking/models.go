package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	createBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID   int64  `json:"venueId"`
	StaffID   *int64 `json:"staffId,omitempty"`
	ServiceID int64  `json:"serviceId"`

	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	PartySize       int    `json:"partySize"`

	CustomerID      *int64  `json:"customerId,omitempty"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBookingUC.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	actor := domain.TokenActor()
	if r.CustomerID != nil {
		actor = domain.CustomerActor(*r.CustomerID)
	}

	return &createBookingUC.Request{
		VenueID:         r.VenueID,
		StaffID:         r.StaffID,
		ServiceID:       r.ServiceID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		PartySize:       r.PartySize,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		SpecialRequests: r.SpecialRequests,
		Actor:           actor,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`

	VenueID   int64  `json:"venueId"`
	StaffID   *int64 `json:"staffId,omitempty"`
	ServiceID int64  `json:"serviceId"`

	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	PartySize       int    `json:"partySize"`
	Status          string `json:"status"`

	CustomerID      *int64  `json:"customerId,omitempty"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *createBookingUC.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		Token:           resp.Token,
		VenueID:         resp.VenueID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		PartySize:       resp.PartySize,
		Status:          resp.Status,
		CustomerID:      resp.CustomerID,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt,
	}
}
