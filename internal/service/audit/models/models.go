package models

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// AuditEntryResponse одна запись истории бронирования
type AuditEntryResponse struct {
	ID        int64 `json:"id"`
	BookingID int64 `json:"bookingId"`

	Action    string  `json:"action"`
	OldStatus *string `json:"oldStatus,omitempty"`
	NewStatus *string `json:"newStatus,omitempty"`
	Actor     string  `json:"actor"`
	Reason    *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// AuditListResponse ответ с историей бронирования в хронологическом порядке
type AuditListResponse struct {
	BookingID int64                `json:"bookingId"`
	Entries   []AuditEntryResponse `json:"entries"`
}

// FromDomainEntries конвертирует записи журнала в DTO
func FromDomainEntries(bookingID int64, entries []*domain.AuditLogEntry) *AuditListResponse {
	resp := &AuditListResponse{
		BookingID: bookingID,
		Entries:   make([]AuditEntryResponse, 0, len(entries)),
	}

	for _, entry := range entries {
		item := AuditEntryResponse{
			ID:        entry.ID,
			BookingID: entry.BookingID,
			Action:    string(entry.Action),
			Actor:     entry.ActorLabel,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		}
		if entry.OldStatus != nil {
			old := string(*entry.OldStatus)
			item.OldStatus = &old
		}
		if entry.NewStatus != nil {
			newStatus := string(*entry.NewStatus)
			item.NewStatus = &newStatus
		}
		resp.Entries = append(resp.Entries, item)
	}

	return resp
}
