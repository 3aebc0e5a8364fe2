package get_booking_audit

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/service/audit/models"
)

type AuditService interface {
	ListForBooking(ctx context.Context, bookingID int64) (*models.AuditListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
