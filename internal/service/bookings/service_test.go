package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

type fakeBookingRepo struct {
	booking    *domain.Booking
	byCustomer []*domain.Booking
	byVenue    []*domain.Booking

	lastStatus *domain.BookingStatus
	lastFilter domain.BookingsFilter
	notes      *string
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.Token != token {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.lastStatus = status
	return f.byCustomer, nil
}

func (f *fakeBookingRepo) GetByVenueWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.byVenue, nil
}

func (f *fakeBookingRepo) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	f.notes = notes
	return nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLogEntry
}

func (f *fakeAuditRepo) Append(ctx context.Context, entry *domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func mustTime(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

func sampleBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:              7,
		Token:           "tok-7",
		VenueID:         1,
		ServiceID:       2,
		BookingDate:     time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       mustTime(t, "14:00"),
		DurationMinutes: 60,
		PartySize:       2,
		Status:          domain.StatusConfirmed,
		CustomerName:    "Анна",
	}
}

func newService(repo *fakeBookingRepo, audit *fakeAuditRepo) *Service {
	return NewService(repo, audit, fakeTxManager{}, noopLogger{})
}

func TestGetByID(t *testing.T) {
	svc := newService(&fakeBookingRepo{booking: sampleBooking(t)}, &fakeAuditRepo{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "15:00", resp.EndTime)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetByToken(t *testing.T) {
	svc := newService(&fakeBookingRepo{booking: sampleBooking(t)}, &fakeAuditRepo{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByToken(context.Background(), "tok-7")
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.GetByToken(context.Background(), "wrong")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.GetByToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetUserBookings(t *testing.T) {
	repo := &fakeBookingRepo{byCustomer: []*domain.Booking{sampleBooking(t)}}
	svc := newService(repo, &fakeAuditRepo{})

	t.Run("with status filter", func(t *testing.T) {
		status := "confirmed"
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			CustomerID: 42,
			Status:     &status,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
		require.NotNil(t, repo.lastStatus)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastStatus)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := "archived"
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			CustomerID: 42,
			Status:     &status,
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("invalid customer id", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{CustomerID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateNotes(t *testing.T) {
	notes := "столик у окна"

	t.Run("by id writes audit entry", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: sampleBooking(t)}
		audit := &fakeAuditRepo{}
		svc := newService(repo, audit)

		resp, err := svc.UpdateNotes(context.Background(), &models.UpdateNotesRequest{
			BookingID: 7,
			Notes:     &notes,
			Actor:     domain.AdminActor(1),
		})
		require.NoError(t, err)

		require.NotNil(t, repo.notes)
		assert.Equal(t, notes, *repo.notes)
		require.NotNil(t, resp.SpecialRequests)
		assert.Equal(t, notes, *resp.SpecialRequests)

		require.Len(t, audit.entries, 1)
		assert.Equal(t, int64(7), audit.entries[0].BookingID)
	})

	t.Run("by token", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: sampleBooking(t)}
		svc := newService(repo, &fakeAuditRepo{})

		_, err := svc.UpdateNotes(context.Background(), &models.UpdateNotesRequest{
			Token: "tok-7",
			Notes: &notes,
			Actor: domain.TokenActor(),
		})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: sampleBooking(t)}
		audit := &fakeAuditRepo{}
		svc := newService(repo, audit)

		_, err := svc.UpdateNotes(context.Background(), &models.UpdateNotesRequest{
			BookingID: 999,
			Notes:     &notes,
			Actor:     domain.AdminActor(1),
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Empty(t, audit.entries)
	})

	t.Run("missing id and token", func(t *testing.T) {
		svc := newService(&fakeBookingRepo{}, &fakeAuditRepo{})

		_, err := svc.UpdateNotes(context.Background(), &models.UpdateNotesRequest{Notes: &notes})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
