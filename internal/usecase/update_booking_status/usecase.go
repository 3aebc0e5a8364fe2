package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

// UseCase use case для смены статуса бронирования (админский доступ)
type UseCase struct {
	bookingRepo  BookingRepository
	auditRepo    AuditRepository
	events       EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		auditRepo:    auditRepo,
		events:       events,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса бронирования.
// Переход валидируется таблицей легальных переходов; completed и
// no_show дополнительно требуют, чтобы время бронирования уже прошло.
// Возврат из cancelled (reopen) заново проверяет конфликт слота -
// за время отмены интервал мог занять кто-то другой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: id=%d, newStatus=%s, actor=%s", req.BookingID, req.NewStatus, req.Actor.Label())

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	newStatus, err := domain.ParseBookingStatus(req.NewStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.NewStatus)
	}

	now := uc.timeProvider.Now()
	reason := strings.TrimSpace(req.Reason)

	var (
		updated   *domain.Booking
		oldStatus domain.BookingStatus
	)

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := uc.getBooking(ctx, req.BookingID)
		if err != nil {
			return err
		}

		oldStatus = booking.Status

		if err := uc.validateTransition(booking, newStatus, reason, now); err != nil {
			return err
		}

		if err := uc.applyTransition(ctx, booking, newStatus, reason); err != nil {
			return err
		}

		entry := domain.NewStatusChangeEntry(booking.ID, oldStatus, newStatus, req.Actor, reasonPtr(reason))
		if _, err := uc.auditRepo.Append(ctx, entry); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to append audit entry: %v", err)
			return fmt.Errorf("%w: failed to append audit entry: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		updated = booking

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateBookingStatus: serialization retries exhausted for id=%d", req.BookingID)
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved %s -> %s", updated.ID, oldStatus, updated.Status)

	uc.publishEvent(ctx, updated, reason)

	return &Response{
		ID:              updated.ID,
		OldStatus:       string(oldStatus),
		Status:          string(updated.Status),
		VenueID:         updated.VenueID,
		StaffID:         updated.StaffID,
		ServiceID:       updated.ServiceID,
		BookingDate:     updated.BookingDate,
		StartTime:       updated.StartTime,
		DurationMinutes: updated.DurationMinutes,
		UpdatedAt:       updated.UpdatedAt,
	}, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// validateTransition транслирует доменные ошибки перехода в ошибки usecase
func (uc *UseCase) validateTransition(booking *domain.Booking, to domain.BookingStatus, reason string, now time.Time) error {
	err := booking.ValidateTransition(to, reason, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	case errors.Is(err, domain.ErrIllegalTransition):
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, to)
	case errors.Is(err, domain.ErrReasonRequired):
		return fmt.Errorf("%w: transition %s -> %s", ErrReasonRequired, booking.Status, to)
	case errors.Is(err, domain.ErrBookingNotElapsed):
		return fmt.Errorf("%w: cannot mark %s before booking end", ErrBookingNotElapsed, to)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// applyTransition выбирает запись по типу перехода: отмена пишет причину
// и момент отмены, reopen их очищает и заново проверяет конфликт слота
func (uc *UseCase) applyTransition(ctx context.Context, booking *domain.Booking, to domain.BookingStatus, reason string) error {
	switch {
	case to == domain.StatusCancelled:
		if err := uc.bookingRepo.Cancel(ctx, booking.ID, reason); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}
		booking.CancellationReason = &reason
		return nil

	case booking.IsCancelled():
		// reopen: слот мог занять кто-то другой, пока бронирование
		// было отменено
		startMinute, err := booking.StartTime.MinuteOfDay()
		if err != nil {
			return fmt.Errorf("%w: invalid booking start time: %v", ErrInternal, err)
		}

		others, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.ResourceFilter(booking.VenueID, booking.StaffID, booking.BookingDate))
		if err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if domain.HasConflict(others, startMinute, startMinute+booking.DurationMinutes, booking.ID) {
			return ErrSlotConflict
		}

		if err := uc.bookingRepo.Reopen(ctx, booking.ID, to); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to reopen booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reopen booking: %v", ErrInternal, err)
		}
		booking.CancellationReason = nil
		booking.CancelledAt = nil
		return nil

	default:
		if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, to); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to update status for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		return nil
	}
}

func (uc *UseCase) publishEvent(ctx context.Context, booking *domain.Booking, reason string) {
	switch booking.Status {
	case domain.StatusCancelled:
		uc.events.BookingCancelled(ctx, booking, reason)
	case domain.StatusCompleted:
		uc.events.BookingCompleted(ctx, booking)
	}
}

func reasonPtr(reason string) *string {
	if reason == "" {
		return nil
	}
	return &reason
}
