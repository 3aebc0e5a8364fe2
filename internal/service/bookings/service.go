package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и правки пожеланий.
// Мутации жизненного цикла (создание, отмена, перенос, смена статуса)
// живут в usecase-пакетах.
type Service struct {
	bookingRepo BookingRepository
	auditRepo   AuditRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID (админский доступ)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByToken получает бронирование по токену.
// Токен - единственный credential: знаешь токен, видишь бронирование.
func (s *Service) GetByToken(ctx context.Context, token string) (*models.BookingResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByToken: booking not found")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByToken - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования заведения с фильтрами по
// сотруднику, периоду и статусу
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d", req.VenueID)

	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateNotes меняет пожелания к бронированию, фиксируя правку
// в audit-журнале той же транзакцией
func (s *Service) UpdateNotes(ctx context.Context, req *models.UpdateNotesRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateNotes: booking id=%d, token_set=%t", req.BookingID, req.Token != "")

	if req.BookingID <= 0 && req.Token == "" {
		return nil, fmt.Errorf("%w: bookingID or token is required", ErrInvalidInput)
	}

	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var (
			booking *domain.Booking
			err     error
		)
		if req.Token != "" {
			booking, err = s.bookingRepo.GetByToken(ctx, req.Token)
		} else {
			booking, err = s.bookingRepo.GetByID(ctx, req.BookingID)
		}
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateNotes - repository error: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.UpdateNotes(ctx, booking.ID, req.Notes); err != nil {
			return fmt.Errorf("%w: UpdateNotes - repository error: %v", ErrInternal, err)
		}

		reason := "изменены пожелания к бронированию"
		if _, err := s.auditRepo.Append(ctx, domain.NewUpdateEntry(booking.ID, req.Actor, &reason)); err != nil {
			return fmt.Errorf("%w: UpdateNotes - audit error: %v", ErrInternal, err)
		}

		booking.SpecialRequests = req.Notes
		updated = booking

		return nil
	})
	if err != nil {
		s.logger.Error("UpdateNotes: %v", err)
		return nil, err
	}

	s.logger.Info("UpdateNotes: updated booking id=%d", updated.ID)
	return models.FromDomainBooking(updated), nil
}
