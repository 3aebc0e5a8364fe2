package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

type fakeBookingRepo struct {
	booking  *domain.Booking
	onDate   []*domain.Booking
	newDate  time.Time
	newStart types.TimeString
	moved    bool
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

func (f *fakeBookingRepo) GetByVenueWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.onDate, nil
}

func (f *fakeBookingRepo) Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString, durationMinutes int) error {
	f.moved = true
	f.newDate = date
	f.newStart = startTime
	return nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLogEntry
}

func (f *fakeAuditRepo) Append(ctx context.Context, entry *domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) ListForWeekday(ctx context.Context, venueID int64, weekday int) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

type fakePolicyRepo struct {
	policy *domain.VenuePolicy
}

func (f *fakePolicyRepo) GetByVenueID(ctx context.Context, venueID int64) (*domain.VenuePolicy, error) {
	return f.policy, nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

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

type fixture struct {
	bookingRepo *fakeBookingRepo
	auditRepo   *fakeAuditRepo
	txManager   *fakeTxManager
	uc          *UseCase
}

func newFixture(t *testing.T, booking *domain.Booking, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		bookingRepo: &fakeBookingRepo{booking: booking},
		auditRepo:   &fakeAuditRepo{},
		txManager:   &fakeTxManager{},
	}

	availabilityRepo := &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{
		{VenueID: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "18:00"), IsActive: true},
	}}

	f.uc = NewUseCase(
		f.bookingRepo,
		f.auditRepo,
		availabilityRepo,
		&fakePolicyRepo{policy: domain.DefaultPolicy(1)},
		f.txManager,
		noopLogger{},
	)
	f.uc.timeProvider = &fakeTimeProvider{now: now}

	return f
}

func confirmedBooking(t *testing.T) *domain.Booking {
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
	}
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, confirmedBooking(t), now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:    7,
		NewDate:      time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		NewStartTime: mustTime(t, "11:00"),
		Actor:        domain.CustomerActor(42),
	})
	require.NoError(t, err)

	assert.True(t, f.bookingRepo.moved)
	assert.Equal(t, "11:00", string(resp.StartTime))
	// Длительность сохраняется, если новая не задана
	assert.Equal(t, 60, resp.DurationMinutes)

	require.Len(t, f.auditRepo.entries, 1)
	require.NotNil(t, f.auditRepo.entries[0].Reason)
	assert.Contains(t, *f.auditRepo.entries[0].Reason, "перенос")
}

func TestExecute_SelfOverlapAllowed(t *testing.T) {
	// Сдвиг на полчаса внутри собственного интервала: 14:00-15:00 -> 14:30-15:30.
	// Собственное бронирование лежит в выборке на дату, но исключается по ID.
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	booking := confirmedBooking(t)
	f := newFixture(t, booking, now)
	f.bookingRepo.onDate = []*domain.Booking{booking}

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:    7,
		NewDate:      booking.BookingDate,
		NewStartTime: mustTime(t, "14:30"),
		Actor:        domain.CustomerActor(42),
	})
	require.NoError(t, err)
	assert.Equal(t, "14:30", string(resp.StartTime))
}

func TestExecute_SlotConflict(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	booking := confirmedBooking(t)
	f := newFixture(t, booking, now)
	f.bookingRepo.onDate = []*domain.Booking{
		booking,
		{ID: 99, StartTime: mustTime(t, "11:30"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID:    7,
		NewDate:      booking.BookingDate,
		NewStartTime: mustTime(t, "11:00"),
		Actor:        domain.CustomerActor(42),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, f.bookingRepo.moved)
}

func TestExecute_NotReschedulable(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)

	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking(t)
			booking.Status = status
			f := newFixture(t, booking, now)

			_, err := f.uc.Execute(context.Background(), &Request{
				BookingID:    7,
				NewDate:      time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
				NewStartTime: mustTime(t, "11:00"),
				Actor:        domain.AdminActor(1),
			})
			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestExecute_CutoffOnOldStart(t *testing.T) {
	// До СТАРОГО начала (20-го 14:00) остается 20 часов при cutoff в 24:
	// перенос для клиента закрыт, даже если новое время далеко впереди
	now := time.Date(2025, 10, 19, 18, 0, 0, 0, time.UTC)

	t.Run("customer rejected", func(t *testing.T) {
		f := newFixture(t, confirmedBooking(t), now)

		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID:    7,
			NewDate:      time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
			NewStartTime: mustTime(t, "11:00"),
			Actor:        domain.CustomerActor(42),
		})
		assert.ErrorIs(t, err, ErrPastCancellationCutoff)
	})

	t.Run("admin bypasses", func(t *testing.T) {
		f := newFixture(t, confirmedBooking(t), now)

		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID:    7,
			NewDate:      time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
			NewStartTime: mustTime(t, "11:00"),
			Actor:        domain.AdminActor(1),
		})
		assert.NoError(t, err)
	})
}

func TestExecute_WindowOnNewStart(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)

	t.Run("too soon", func(t *testing.T) {
		f := newFixture(t, confirmedBooking(t), now)

		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID:    7,
			NewDate:      time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC),
			NewStartTime: mustTime(t, "10:30"),
			Actor:        domain.CustomerActor(42),
		})
		assert.ErrorIs(t, err, ErrTooSoon)
	})

	t.Run("too far out", func(t *testing.T) {
		f := newFixture(t, confirmedBooking(t), now)

		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID:    7,
			NewDate:      time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
			NewStartTime: mustTime(t, "11:00"),
			Actor:        domain.CustomerActor(42),
		})
		assert.ErrorIs(t, err, ErrTooFarOut)
	})
}

func TestExecute_OpeningHours(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, confirmedBooking(t), now)

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID:    7,
		NewDate:      time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		NewStartTime: mustTime(t, "17:30"), // 17:30 + 60 минут вылезает за 18:00
		Actor:        domain.CustomerActor(42),
	})
	assert.ErrorIs(t, err, ErrOutsideOpeningHours)
}

func TestExecute_Contention(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, confirmedBooking(t), now)
	f.txManager.err = txmanager.ErrSerialization

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID:    7,
		NewDate:      time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		NewStartTime: mustTime(t, "11:00"),
		Actor:        domain.CustomerActor(42),
	})
	assert.ErrorIs(t, err, ErrContention)
}
