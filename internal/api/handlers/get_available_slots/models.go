package get_available_slots

import (
	"github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
)

// SlotResponse один слот сетки
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	VenueID int64          `json:"venueId"`
	StaffID *int64         `json:"staffId,omitempty"`
	Date    string         `json:"date"` // "2025-10-15"
	Slots   []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *get_available_slots.Response, dateFormat string) *GetAvailableSlotsResponse {
	result := &GetAvailableSlotsResponse{
		VenueID: resp.VenueID,
		StaffID: resp.StaffID,
		Date:    resp.Date.Format(dateFormat),
		Slots:   make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}

	return result
}
