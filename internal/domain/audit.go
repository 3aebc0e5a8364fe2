package domain

import "time"

// AuditAction тип действия в audit-журнале
type AuditAction string

const (
	AuditStatusChange AuditAction = "status_change"
	AuditCancel       AuditAction = "cancel"
	AuditUpdate       AuditAction = "update"
)

// AuditLogEntry неизменяемая запись об одной мутации бронирования.
// Записи принадлежат бронированию, упорядочены по CreatedAt и никогда
// не обновляются и не удаляются после создания.
type AuditLogEntry struct {
	ID        int64
	BookingID int64

	Action     AuditAction
	OldStatus  *BookingStatus
	NewStatus  *BookingStatus
	ActorLabel string
	Reason     *string

	CreatedAt time.Time
}

// NewStatusChangeEntry собирает запись о переходе статуса
func NewStatusChangeEntry(bookingID int64, old, new BookingStatus, actor Actor, reason *string) *AuditLogEntry {
	action := AuditStatusChange
	if new == StatusCancelled {
		action = AuditCancel
	}
	return &AuditLogEntry{
		BookingID:  bookingID,
		Action:     action,
		OldStatus:  &old,
		NewStatus:  &new,
		ActorLabel: actor.Label(),
		Reason:     reason,
	}
}

// NewCreationEntry собирает запись о создании бронирования
func NewCreationEntry(bookingID int64, initial BookingStatus, actor Actor) *AuditLogEntry {
	return &AuditLogEntry{
		BookingID:  bookingID,
		Action:     AuditStatusChange,
		NewStatus:  &initial,
		ActorLabel: actor.Label(),
	}
}

// NewUpdateEntry собирает запись об изменении данных бронирования
// (перенос, правка заметок) без смены статуса
func NewUpdateEntry(bookingID int64, actor Actor, reason *string) *AuditLogEntry {
	return &AuditLogEntry{
		BookingID:  bookingID,
		Action:     AuditUpdate,
		ActorLabel: actor.Label(),
		Reason:     reason,
	}
}
