package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/usecase/update_booking_status"
)

type UpdateBookingStatusUseCase interface {
	Execute(ctx context.Context, req *update_booking_status.Request) (*update_booking_status.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
