package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	policyRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/policy"
)

// UseCase use case для получения доступных слотов на день
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	policyRepo       PolicyRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	policyRepo PolicyRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		policyRepo:       policyRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Выдача чистая функция от правил доступности, политики и набора
// бронирований ресурса на дату: повторный вызов без новых записей
// возвращает идентичный результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: venue=%d, staff=%v, date=%s, duration=%d",
		req.VenueID, req.StaffID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем политику заведения (дефолтная, если не настроена)
	venuePolicy, err := uc.getPolicy(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	// 3. Валидация даты: не в прошлом и не дальше горизонта бронирования
	if err := validateDate(req.Date, now, venuePolicy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Окна работы ресурса на день недели
	rules, err := uc.availabilityRepo.ListForWeekday(ctx, req.VenueID, domain.WeekdayOf(req.Date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	intervals := domain.ResolveOpenIntervals(rules, req.StaffID)
	if len(intervals) == 0 {
		uc.logger.Info("GetAvailableSlots: venue=%d closed on %s",
			req.VenueID, req.Date.Format(domain.DateFormat))
		return &Response{
			VenueID: req.VenueID,
			StaffID: req.StaffID,
			Date:    req.Date,
			Slots:   []domain.Slot{},
		}, nil
	}

	// 5. Бронирования ресурса на дату (только занимающие слот)
	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.ResourceFilter(req.VenueID, req.StaffID, req.Date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Строим сетку слотов с пометкой доступности
	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = domain.DefaultGranularityMinutes
	}

	var excludeID int64
	if req.ExcludeBookingID != nil {
		excludeID = *req.ExcludeBookingID
	}

	slots, err := buildSlots(
		intervals,
		bookings,
		req.DurationMinutes,
		granularity,
		minAllowedStartMinute(req.Date, now, venuePolicy.AdvanceBookingHours),
		excludeID,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for venue=%d, date=%s",
		len(slots), req.VenueID, req.Date.Format(domain.DateFormat))

	return &Response{
		VenueID: req.VenueID,
		StaffID: req.StaffID,
		Date:    req.Date,
		Slots:   slots,
	}, nil
}

// getPolicy получает политику заведения, подставляя дефолтную при её отсутствии
func (uc *UseCase) getPolicy(ctx context.Context, venueID int64) (*domain.VenuePolicy, error) {
	venuePolicy, err := uc.policyRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Info("GetAvailableSlots: using default policy for venue=%d", venueID)
			return domain.DefaultPolicy(venueID), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get policy for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	return venuePolicy, nil
}

// validateDate проверяет, что дата подходит для выдачи слотов
func validateDate(requestDate, now time.Time, advanceBookingDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 - нет ограничения горизонта
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
