package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/integrations/customerservice"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/policy"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// создание повторяется при коллизии токена - событие астрономически
// редкое, но unique constraint его честно ловит
const maxTokenAttempts = 3

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	auditRepo        AuditRepository
	availabilityRepo AvailabilityRepository
	policyRepo       PolicyRepository
	customerClient   CustomerServiceClient
	events           EventPublisher
	txManager        TransactionManager
	generateToken    TokenGenerator
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	availabilityRepo AvailabilityRepository,
	policyRepo PolicyRepository,
	customerClient CustomerServiceClient,
	events EventPublisher,
	txManager TransactionManager,
	generateToken TokenGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		auditRepo:        auditRepo,
		availabilityRepo: availabilityRepo,
		policyRepo:       policyRepo,
		customerClient:   customerClient,
		events:           events,
		txManager:        txManager,
		generateToken:    generateToken,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликта и запись выполняются в одной сериализуемой
// транзакции: между чтением занятых интервалов и вставкой никто не
// может занять тот же слот того же ресурса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: venue=%d, staff=%v, date=%s, start=%s, duration=%d",
		req.VenueID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Обогащаем контактные данные из CustomerService (graceful degradation)
	if err := uc.enrichCustomerData(ctx, req); err != nil {
		return nil, err
	}

	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 3. Политика заведения и окно бронирования
		venuePolicy, err := uc.getPolicy(ctx, req.VenueID)
		if err != nil {
			return err
		}

		if err := uc.checkBookingWindow(venuePolicy, req.Date, req.StartTime, now); err != nil {
			return err
		}

		// 4. Слот должен целиком помещаться в окно работы ресурса
		startMinute, err := req.StartTime.MinuteOfDay()
		if err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}

		rules, err := uc.availabilityRepo.ListForWeekday(ctx, req.VenueID, domain.WeekdayOf(req.Date))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		intervals := domain.ResolveOpenIntervals(rules, req.StaffID)
		if len(intervals) == 0 {
			return ErrVenueClosed
		}
		if !slotWithinOpeningHours(intervals, startMinute, req.DurationMinutes) {
			return ErrOutsideOpeningHours
		}

		// 5. Проверка конфликта: активные бронирования ресурса на дату,
		// внутри транзакции - с блокировкой строк
		bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.ResourceFilter(req.VenueID, req.StaffID, req.Date))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if domain.HasConflict(bookings, startMinute, startMinute+req.DurationMinutes, 0) {
			return ErrSlotConflict
		}

		// 6. Вставка бронирования со свежим токеном
		created, err = uc.insertBooking(ctx, req)
		if err != nil {
			return err
		}

		// 7. Audit-запись в той же транзакции, что и вставка
		if _, err := uc.auditRepo.Append(ctx, domain.NewCreationEntry(created.ID, created.Status, req.Actor)); err != nil {
			uc.logger.Error("CreateBooking: failed to append audit entry: %v", err)
			return fmt.Errorf("%w: failed to append audit entry: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted for venue=%d, date=%s",
				req.VenueID, req.Date.Format(domain.DateFormat))
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d for venue=%d", created.ID, created.VenueID)

	uc.events.BookingCreated(ctx, created)

	return toResponse(created), nil
}

// enrichCustomerData подставляет контактные данные зарегистрированного
// клиента. При недоступности CustomerService бронирование создается
// с данными из запроса - при условии, что их достаточно.
func (uc *UseCase) enrichCustomerData(ctx context.Context, req *Request) error {
	if req.CustomerID == nil {
		return nil
	}

	customer, err := uc.customerClient.GetCustomerWithGracefulDegradation(ctx, *req.CustomerID)
	if err != nil {
		if errors.Is(err, customerservice.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer %d not found", *req.CustomerID)
			return fmt.Errorf("%w: customer %d", ErrCustomerNotFound, *req.CustomerID)
		}

		// Graceful degradation: сервис недоступен, работаем с тем, что есть
		uc.logger.Warn("CreateBooking: customer service degraded for customer %d: %v", *req.CustomerID, err)
		if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
			return fmt.Errorf("%w: customer service unavailable and contact data missing", ErrInvalidInput)
		}
		return nil
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		req.CustomerName = customer.Name
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		req.CustomerEmail = customer.Email
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		req.CustomerPhone = customer.Phone
	}

	return nil
}

// getPolicy получает политику заведения, подставляя дефолтную при её отсутствии
func (uc *UseCase) getPolicy(ctx context.Context, venueID int64) (*domain.VenuePolicy, error) {
	venuePolicy, err := uc.policyRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return domain.DefaultPolicy(venueID), nil
		}
		uc.logger.Error("CreateBooking: failed to get policy for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	return venuePolicy, nil
}

// checkBookingWindow транслирует доменные темпоральные ошибки в ошибки usecase
func (uc *UseCase) checkBookingWindow(venuePolicy *domain.VenuePolicy, date time.Time, start types.TimeString, now time.Time) error {
	err := venuePolicy.CheckBookingWindow(date, start, now)
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

// insertBooking вставляет бронирование, повторяя генерацию токена при коллизии
func (uc *UseCase) insertBooking(ctx context.Context, req *Request) (*domain.Booking, error) {
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		bookingToken, err := uc.generateToken()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate token: %v", err)
			return nil, fmt.Errorf("%w: failed to generate token: %v", ErrInternal, err)
		}

		created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
			Token:           bookingToken,
			VenueID:         req.VenueID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			PartySize:       req.PartySize,
			CustomerID:      req.CustomerID,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			SpecialRequests: req.SpecialRequests,
			Status:          domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateToken) {
				uc.logger.Warn("CreateBooking: token collision, attempt %d", attempt)
				continue
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return created, nil
	}

	return nil, fmt.Errorf("%w: token collisions exhausted", ErrInternal)
}

func toResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:              booking.ID,
		Token:           booking.Token,
		VenueID:         booking.VenueID,
		StaffID:         booking.StaffID,
		ServiceID:       booking.ServiceID,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
		PartySize:       booking.PartySize,
		Status:          string(booking.Status),
		CustomerID:      booking.CustomerID,
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		CustomerPhone:   booking.CustomerPhone,
		SpecialRequests: booking.SpecialRequests,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}
}
