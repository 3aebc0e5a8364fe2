package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/policy"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	auditRepo    AuditRepository
	policyRepo   PolicyRepository
	events       EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	policyRepo PolicyRepository,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		auditRepo:    auditRepo,
		policyRepo:   policyRepo,
		events:       events,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Проверка статуса, cutoff-политики и запись выполняются в одной
// сериализуемой транзакции - статус не может поменяться между
// чтением и отменой. Админ отменяет и после cutoff.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: id=%d, token_set=%t, actor=%s", req.BookingID, req.Token != "", req.Actor.Label())

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	reason := strings.TrimSpace(req.Reason)

	var cancelled *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := uc.getBooking(ctx, req)
		if err != nil {
			return err
		}

		// 1. Легальность перехода в cancelled из текущего статуса
		if err := uc.validateTransition(booking, reason, now); err != nil {
			return err
		}

		// 2. Cutoff-политика заведения; админ отменяет в любой момент
		if !req.Actor.IsAdmin() {
			if err := uc.checkCutoff(ctx, booking, now); err != nil {
				return err
			}
		}

		// 3. Отмена и audit-запись в одной транзакции
		if err := uc.bookingRepo.Cancel(ctx, booking.ID, reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		entry := domain.NewStatusChangeEntry(booking.ID, booking.Status, domain.StatusCancelled, req.Actor, &reason)
		if _, err := uc.auditRepo.Append(ctx, entry); err != nil {
			uc.logger.Error("CancelBooking: failed to append audit entry: %v", err)
			return fmt.Errorf("%w: failed to append audit entry: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancellationReason = &reason
		cancelled = booking

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CancelBooking: serialization retries exhausted for id=%d", req.BookingID)
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: cancelled booking id=%d", cancelled.ID)

	uc.events.BookingCancelled(ctx, cancelled, reason)

	return toResponse(cancelled, now), nil
}

func (uc *UseCase) getBooking(ctx context.Context, req *Request) (*domain.Booking, error) {
	var (
		booking *domain.Booking
		err     error
	)
	if req.Token != "" {
		booking, err = uc.bookingRepo.GetByToken(ctx, req.Token)
	} else {
		booking, err = uc.bookingRepo.GetByID(ctx, req.BookingID)
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// validateTransition транслирует доменные ошибки перехода в ошибки usecase
func (uc *UseCase) validateTransition(booking *domain.Booking, reason string, now time.Time) error {
	err := booking.ValidateTransition(domain.StatusCancelled, reason, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrReasonRequired):
		return ErrReasonRequired
	case errors.Is(err, domain.ErrIllegalTransition):
		return fmt.Errorf("%w: cannot cancel booking in status %q", ErrIllegalTransition, booking.Status)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// checkCutoff сверяет момент отмены с cancellation_hours политики заведения
func (uc *UseCase) checkCutoff(ctx context.Context, booking *domain.Booking, now time.Time) error {
	venuePolicy, err := uc.policyRepo.GetByVenueID(ctx, booking.VenueID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			venuePolicy = domain.DefaultPolicy(booking.VenueID)
		} else {
			uc.logger.Error("CancelBooking: failed to get policy for venue=%d: %v", booking.VenueID, err)
			return fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
	}

	if err := venuePolicy.CheckCancellationCutoff(booking.BookingDate, booking.StartTime, now); err != nil {
		if errors.Is(err, domain.ErrPastCancellationCutoff) {
			return fmt.Errorf("%w: minimum %d hours before start", ErrPastCancellationCutoff, venuePolicy.CancellationHours)
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return nil
}

func toResponse(booking *domain.Booking, now time.Time) *Response {
	cancelledAt := booking.CancelledAt
	if cancelledAt == nil {
		cancelledAt = &now
	}
	return &Response{
		ID:                 booking.ID,
		Status:             string(booking.Status),
		VenueID:            booking.VenueID,
		StaffID:            booking.StaffID,
		ServiceID:          booking.ServiceID,
		BookingDate:        booking.BookingDate,
		StartTime:          booking.StartTime,
		DurationMinutes:    booking.DurationMinutes,
		CancellationReason: booking.CancellationReason,
		CancelledAt:        cancelledAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}
