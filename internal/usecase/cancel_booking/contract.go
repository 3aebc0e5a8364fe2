package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// AuditRepository интерфейс append-only репозитория audit-журнала
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) (*domain.AuditLogEntry, error)
}

// PolicyRepository интерфейс репозитория политик заведений
type PolicyRepository interface {
	GetByVenueID(ctx context.Context, venueID int64) (*domain.VenuePolicy, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking, reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
