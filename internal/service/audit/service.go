package audit

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/service/audit/models"
)

// Service сервис чтения audit-журнала бронирований
type Service struct {
	auditRepo   AuditRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса audit-журнала
func NewService(auditRepo AuditRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		auditRepo:   auditRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ListForBooking возвращает полную историю бронирования в хронологическом
// порядке. Для несуществующего бронирования возвращает ErrBookingNotFound,
// а не пустой список.
func (s *Service) ListForBooking(ctx context.Context, bookingID int64) (*models.AuditListResponse, error) {
	s.logger.Info("ListForBooking: fetching audit log for booking id=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ListForBooking: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ListForBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListForBooking - repository error: %v", ErrInternal, err)
	}

	entries, err := s.auditRepo.ListByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListForBooking: audit repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListForBooking - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntries(bookingID, entries), nil
}
