package cancel_booking

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
	booking      *domain.Booking
	cancelledID  int64
	cancelReason string
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

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	f.cancelledID = id
	f.cancelReason = reason
	return nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLogEntry
}

func (f *fakeAuditRepo) Append(ctx context.Context, entry *domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

type fakePolicyRepo struct {
	policy *domain.VenuePolicy
}

func (f *fakePolicyRepo) GetByVenueID(ctx context.Context, venueID int64) (*domain.VenuePolicy, error) {
	return f.policy, nil
}

type fakeEventPublisher struct {
	cancelled []*domain.Booking
}

func (f *fakeEventPublisher) BookingCancelled(ctx context.Context, booking *domain.Booking, reason string) {
	f.cancelled = append(f.cancelled, booking)
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
	policyRepo  *fakePolicyRepo
	events      *fakeEventPublisher
	txManager   *fakeTxManager
	uc          *UseCase
}

func newFixture(t *testing.T, booking *domain.Booking, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		bookingRepo: &fakeBookingRepo{booking: booking},
		auditRepo:   &fakeAuditRepo{},
		policyRepo:  &fakePolicyRepo{policy: domain.DefaultPolicy(1)},
		events:      &fakeEventPublisher{},
		txManager:   &fakeTxManager{},
	}

	f.uc = NewUseCase(f.bookingRepo, f.auditRepo, f.policyRepo, f.events, f.txManager, noopLogger{})
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
		Status:          domain.StatusConfirmed,
	}
}

func TestExecute_Success(t *testing.T) {
	// сutoff = 24 часа: отмена за двое суток до начала проходит
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, confirmedBooking(t), now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Reason:    "планы изменились",
		Actor:     domain.CustomerActor(42),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, int64(7), f.bookingRepo.cancelledID)
	assert.Equal(t, "планы изменились", f.bookingRepo.cancelReason)

	require.Len(t, f.auditRepo.entries, 1)
	entry := f.auditRepo.entries[0]
	require.NotNil(t, entry.OldStatus)
	assert.Equal(t, domain.StatusConfirmed, *entry.OldStatus)
	require.NotNil(t, entry.NewStatus)
	assert.Equal(t, domain.StatusCancelled, *entry.NewStatus)

	require.Len(t, f.events.cancelled, 1)
}

func TestExecute_ByToken(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, confirmedBooking(t), now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		Token:  "tok-7",
		Reason: "не смогу прийти",
		Actor:  domain.TokenActor(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
}

func TestExecute_ReasonRequired(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)

	for _, reason := range []string{"", "   "} {
		f := newFixture(t, confirmedBooking(t), now)

		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID: 7,
			Reason:    reason,
			Actor:     domain.CustomerActor(42),
		})
		assert.ErrorIs(t, err, ErrReasonRequired)
		assert.Zero(t, f.bookingRepo.cancelledID)
	}
}

func TestExecute_IllegalTransition(t *testing.T) {
	now := time.Date(2025, 10, 25, 10, 0, 0, 0, time.UTC)

	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusNoShow, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking(t)
			booking.Status = status
			f := newFixture(t, booking, now)

			_, err := f.uc.Execute(context.Background(), &Request{
				BookingID: 7,
				Reason:    "поздно",
				Actor:     domain.AdminActor(1),
			})
			assert.ErrorIs(t, err, ErrIllegalTransition)
		})
	}
}

func TestExecute_CancellationCutoff(t *testing.T) {
	// До начала 14:00 20-го остается 20 часов при cutoff в 24
	now := time.Date(2025, 10, 19, 18, 0, 0, 0, time.UTC)

	t.Run("customer rejected past cutoff", func(t *testing.T) {
		f := newFixture(t, confirmedBooking(t), now)

		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID: 7,
			Reason:    "передумал",
			Actor:     domain.CustomerActor(42),
		})
		assert.ErrorIs(t, err, ErrPastCancellationCutoff)
		assert.Zero(t, f.bookingRepo.cancelledID)
	})

	t.Run("admin bypasses cutoff", func(t *testing.T) {
		f := newFixture(t, confirmedBooking(t), now)

		_, err := f.uc.Execute(context.Background(), &Request{
			BookingID: 7,
			Reason:    "форс-мажор заведения",
			Actor:     domain.AdminActor(1),
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(7), f.bookingRepo.cancelledID)
	})
}

func TestExecute_NotFound(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, confirmedBooking(t), now)

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 999,
		Reason:    "причина",
		Actor:     domain.AdminActor(1),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Contention(t *testing.T) {
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, confirmedBooking(t), now)
	f.txManager.err = txmanager.ErrSerialization

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: 7,
		Reason:    "причина",
		Actor:     domain.CustomerActor(42),
	})
	assert.ErrorIs(t, err, ErrContention)
	assert.Empty(t, f.events.cancelled)
}
