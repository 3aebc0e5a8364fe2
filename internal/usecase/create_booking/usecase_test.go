package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/integrations/customerservice"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
}

func (f *fakeBookingRepo) GetByVenueWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
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

type fakeCustomerClient struct {
	customer *customerservice.Customer
	err      error
}

func (f *fakeCustomerClient) GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*customerservice.Customer, error) {
	return f.customer, f.err
}

type fakeEventPublisher struct {
	created []*domain.Booking
}

func (f *fakeEventPublisher) BookingCreated(ctx context.Context, booking *domain.Booking) {
	f.created = append(f.created, booking)
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
	bookingRepo      *fakeBookingRepo
	auditRepo        *fakeAuditRepo
	availabilityRepo *fakeAvailabilityRepo
	policyRepo       *fakePolicyRepo
	customerClient   *fakeCustomerClient
	events           *fakeEventPublisher
	txManager        *fakeTxManager
	uc               *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		bookingRepo: &fakeBookingRepo{nextID: 1},
		auditRepo:   &fakeAuditRepo{},
		availabilityRepo: &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{
			{VenueID: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "18:00"), IsActive: true},
		}},
		policyRepo:     &fakePolicyRepo{policy: domain.DefaultPolicy(1)},
		customerClient: &fakeCustomerClient{},
		events:         &fakeEventPublisher{},
		txManager:      &fakeTxManager{},
	}

	f.uc = NewUseCase(
		f.bookingRepo,
		f.auditRepo,
		f.availabilityRepo,
		f.policyRepo,
		f.customerClient,
		f.events,
		f.txManager,
		func() (string, error) { return "test-token", nil },
		noopLogger{},
	)
	f.uc.timeProvider = &fakeTimeProvider{now: now}

	return f
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		VenueID:         1,
		ServiceID:       2,
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 60,
		PartySize:       2,
		CustomerName:    "Анна",
		CustomerEmail:   "anna@example.com",
		Actor:           domain.TokenActor(),
	}
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Audit-запись о создании
	require.Len(t, f.auditRepo.entries, 1)
	entry := f.auditRepo.entries[0]
	assert.Equal(t, int64(1), entry.BookingID)
	require.NotNil(t, entry.NewStatus)
	assert.Equal(t, domain.StatusPending, *entry.NewStatus)

	// Событие опубликовано после коммита
	require.Len(t, f.events.created, 1)
}

func TestExecute_SlotConflict(t *testing.T) {
	now := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.bookingRepo.existing = []*domain.Booking{
		{ID: 99, StartTime: mustTime(t, "10:30"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, f.bookingRepo.created)
	assert.Empty(t, f.events.created)
}

func TestExecute_AdjacentBookingAllowed(t *testing.T) {
	now := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	// Существующее бронирование заканчивается ровно в 10:00
	f.bookingRepo.existing = []*domain.Booking{
		{ID: 99, StartTime: mustTime(t, "09:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_TemporalPolicy(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)

	t.Run("too soon", func(t *testing.T) {
		f := newFixture(t, now)
		req := validRequest(t)
		req.Date = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		req.StartTime = mustTime(t, "10:00") // меньше часа до начала

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooSoon)
	})

	t.Run("too far out", func(t *testing.T) {
		f := newFixture(t, now)
		req := validRequest(t)
		req.Date = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooFarOut)
	})
}

func TestExecute_OpeningHours(t *testing.T) {
	now := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)

	t.Run("venue closed", func(t *testing.T) {
		f := newFixture(t, now)
		f.availabilityRepo.rules = nil

		_, err := f.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrVenueClosed)
	})

	t.Run("slot outside opening hours", func(t *testing.T) {
		f := newFixture(t, now)
		req := validRequest(t)
		req.StartTime = mustTime(t, "17:30") // 17:30 + 60 минут вылезает за 18:00

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOpeningHours)
	})
}

func TestExecute_Contention(t *testing.T) {
	now := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.txManager.err = txmanager.ErrSerialization

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrContention)
	assert.Empty(t, f.events.created)
}

func TestExecute_CustomerLookup(t *testing.T) {
	now := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	customerID := int64(5)

	t.Run("customer not found", func(t *testing.T) {
		f := newFixture(t, now)
		f.customerClient.err = customerservice.ErrCustomerNotFound

		req := validRequest(t)
		req.CustomerID = &customerID

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("contact data enriched from customer service", func(t *testing.T) {
		f := newFixture(t, now)
		f.customerClient.customer = &customerservice.Customer{
			ID:    customerID,
			Name:  "Мария",
			Email: "maria@example.com",
			Phone: "+79001234567",
		}

		req := validRequest(t)
		req.CustomerID = &customerID
		req.CustomerName = ""
		req.CustomerEmail = ""

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Мария", resp.CustomerName)
		assert.Equal(t, "maria@example.com", resp.CustomerEmail)
	})

	t.Run("degraded service with contact data in request", func(t *testing.T) {
		f := newFixture(t, now)
		f.customerClient.err = customerservice.ErrServiceDegraded

		req := validRequest(t)
		req.CustomerID = &customerID

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("degraded service without contact data", func(t *testing.T) {
		f := newFixture(t, now)
		f.customerClient.err = customerservice.ErrServiceDegraded

		req := validRequest(t)
		req.CustomerID = &customerID
		req.CustomerName = ""

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, time.Now())

	t.Run("anonymous booking requires contact data", func(t *testing.T) {
		req := validRequest(t)
		req.CustomerName = ""

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("party size bounds", func(t *testing.T) {
		req := validRequest(t)
		req.PartySize = 0

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duration bounds", func(t *testing.T) {
		req := validRequest(t)
		req.DurationMinutes = 0

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
