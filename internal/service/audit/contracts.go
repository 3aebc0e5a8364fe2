package audit

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// AuditRepository интерфейс репозитория audit-журнала
type AuditRepository interface {
	ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.AuditLogEntry, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
