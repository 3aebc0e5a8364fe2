package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/policy"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	auditRepo        AuditRepository
	availabilityRepo AvailabilityRepository
	policyRepo       PolicyRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	availabilityRepo AvailabilityRepository,
	policyRepo PolicyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		auditRepo:        auditRepo,
		availabilityRepo: availabilityRepo,
		policyRepo:       policyRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Перенос атомарный: либо бронирование целиком переезжает на новый
// интервал, либо остается на старом. При проверке конфликта на новом
// интервале собственный ID бронирования исключается - перенос внутри
// своего же интервала (например сдвиг на 15 минут с перекрытием)
// легален.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: id=%d, token_set=%t, newDate=%s, newStart=%s",
		req.BookingID, req.Token != "", req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var rescheduled *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := uc.getBooking(ctx, req)
		if err != nil {
			return err
		}

		// 1. Переносятся только активные бронирования
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status %q", ErrNotReschedulable, booking.Status)
		}

		venuePolicy, err := uc.getPolicy(ctx, booking.VenueID)
		if err != nil {
			return err
		}

		// 2. Cutoff считается от СТАРОГО времени начала: перенос за час
		// до визита - та же поздняя отмена. Админ переносит в любой момент.
		if !req.Actor.IsAdmin() {
			if err := venuePolicy.CheckCancellationCutoff(booking.BookingDate, booking.StartTime, now); err != nil {
				if errors.Is(err, domain.ErrPastCancellationCutoff) {
					return fmt.Errorf("%w: minimum %d hours before start", ErrPastCancellationCutoff, venuePolicy.CancellationHours)
				}
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		// 3. Окно бронирования для нового времени
		if err := uc.checkBookingWindow(venuePolicy, req, now); err != nil {
			return err
		}

		duration := req.NewDurationMinutes
		if duration == 0 {
			duration = booking.DurationMinutes
		}

		newStartMinute, err := req.NewStartTime.MinuteOfDay()
		if err != nil {
			return fmt.Errorf("%w: invalid newStartTime: %v", ErrInvalidInput, err)
		}

		// 4. Новый слот внутри окон работы ресурса
		rules, err := uc.availabilityRepo.ListForWeekday(ctx, booking.VenueID, domain.WeekdayOf(req.NewDate))
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		intervals := domain.ResolveOpenIntervals(rules, booking.StaffID)
		if len(intervals) == 0 {
			return ErrVenueClosed
		}
		if !slotWithinOpeningHours(intervals, newStartMinute, duration) {
			return ErrOutsideOpeningHours
		}

		// 5. Конфликт на новом интервале, исключая само бронирование
		others, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.ResourceFilter(booking.VenueID, booking.StaffID, req.NewDate))
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if domain.HasConflict(others, newStartMinute, newStartMinute+duration, booking.ID) {
			return ErrSlotConflict
		}

		// 6. Перенос и audit-запись в одной транзакции
		if err := uc.bookingRepo.Reschedule(ctx, booking.ID, req.NewDate, req.NewStartTime, duration); err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		reason := fmt.Sprintf("перенос с %s %s на %s %s",
			booking.BookingDate.Format(domain.DateFormat), booking.StartTime,
			req.NewDate.Format(domain.DateFormat), req.NewStartTime)
		if _, err := uc.auditRepo.Append(ctx, domain.NewUpdateEntry(booking.ID, req.Actor, &reason)); err != nil {
			uc.logger.Error("RescheduleBooking: failed to append audit entry: %v", err)
			return fmt.Errorf("%w: failed to append audit entry: %v", ErrInternal, err)
		}

		booking.BookingDate = req.NewDate
		booking.StartTime = req.NewStartTime
		booking.DurationMinutes = duration
		rescheduled = booking

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RescheduleBooking: serialization retries exhausted for id=%d", req.BookingID)
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: rescheduled booking id=%d to %s %s",
		rescheduled.ID, rescheduled.BookingDate.Format(domain.DateFormat), rescheduled.StartTime)

	return toResponse(rescheduled), nil
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
		uc.logger.Error("RescheduleBooking: failed to get booking: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) getPolicy(ctx context.Context, venueID int64) (*domain.VenuePolicy, error) {
	venuePolicy, err := uc.policyRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return domain.DefaultPolicy(venueID), nil
		}
		uc.logger.Error("RescheduleBooking: failed to get policy for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	return venuePolicy, nil
}

// checkBookingWindow транслирует доменные темпоральные ошибки в ошибки usecase
func (uc *UseCase) checkBookingWindow(venuePolicy *domain.VenuePolicy, req *Request, now time.Time) error {
	err := venuePolicy.CheckBookingWindow(req.NewDate, req.NewStartTime, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrTooSoon):
		return fmt.Errorf("%w: minimum %d hours in advance", ErrTooSoon, venuePolicy.AdvanceBookingHours)
	case errors.Is(err, domain.ErrTooFarOut):
		return fmt.Errorf("%w: maximum %d days in advance", ErrTooFarOut, venuePolicy.AdvanceBookingDays)
	default:
		return fmt.Errorf("%w: invalid booking time: %v", ErrInvalidInput, err)
	}
}

func toResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:              booking.ID,
		Status:          string(booking.Status),
		VenueID:         booking.VenueID,
		StaffID:         booking.StaffID,
		ServiceID:       booking.ServiceID,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
		PartySize:       booking.PartySize,
		UpdatedAt:       booking.UpdatedAt,
	}
}
