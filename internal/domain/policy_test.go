package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVenuePolicy_CheckBookingWindow(t *testing.T) {
	policy := &VenuePolicy{
		VenueID:             1,
		AdvanceBookingDays:  30,
		AdvanceBookingHours: 2,
	}
	now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	t.Run("inside window", func(t *testing.T) {
		date := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
		err := policy.CheckBookingWindow(date, mustTimeString(t, "12:00"), now)
		assert.NoError(t, err)
	})

	t.Run("too soon", func(t *testing.T) {
		date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		err := policy.CheckBookingWindow(date, mustTimeString(t, "11:00"), now)
		assert.ErrorIs(t, err, ErrTooSoon)
	})

	t.Run("exactly at lead time boundary allowed", func(t *testing.T) {
		date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		err := policy.CheckBookingWindow(date, mustTimeString(t, "12:00"), now)
		assert.NoError(t, err)
	})

	t.Run("too far out", func(t *testing.T) {
		date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
		err := policy.CheckBookingWindow(date, mustTimeString(t, "12:00"), now)
		assert.ErrorIs(t, err, ErrTooFarOut)
	})

	t.Run("zero hours disables lead time", func(t *testing.T) {
		relaxed := &VenuePolicy{VenueID: 1, AdvanceBookingDays: 30}
		date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		err := relaxed.CheckBookingWindow(date, mustTimeString(t, "10:00"), now)
		assert.NoError(t, err)
	})

	t.Run("zero days disables horizon", func(t *testing.T) {
		relaxed := &VenuePolicy{VenueID: 1, AdvanceBookingHours: 1}
		date := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
		err := relaxed.CheckBookingWindow(date, mustTimeString(t, "12:00"), now)
		assert.NoError(t, err)
	})
}

func TestVenuePolicy_CheckCancellationCutoff(t *testing.T) {
	policy := &VenuePolicy{VenueID: 1, CancellationHours: 24}

	bookingDate := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	start := "14:00"

	t.Run("before cutoff allowed", func(t *testing.T) {
		// За 28 часов до начала
		now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
		err := policy.CheckCancellationCutoff(bookingDate, mustTimeString(t, start), now)
		assert.NoError(t, err)
	})

	t.Run("past cutoff rejected", func(t *testing.T) {
		// За 20 часов до начала - cutoff 24 часа уже пройден
		now := time.Date(2025, 10, 15, 18, 0, 0, 0, time.UTC)
		err := policy.CheckCancellationCutoff(bookingDate, mustTimeString(t, start), now)
		assert.ErrorIs(t, err, ErrPastCancellationCutoff)
	})

	t.Run("zero hours allows cancel up to start", func(t *testing.T) {
		relaxed := &VenuePolicy{VenueID: 1}
		now := time.Date(2025, 10, 16, 13, 59, 0, 0, time.UTC)
		err := relaxed.CheckCancellationCutoff(bookingDate, mustTimeString(t, start), now)
		assert.NoError(t, err)
	})
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy(42)

	assert.Equal(t, int64(42), policy.VenueID)
	assert.Equal(t, DefaultAdvanceBookingDays, policy.AdvanceBookingDays)
	assert.Equal(t, DefaultAdvanceBookingHours, policy.AdvanceBookingHours)
	assert.Equal(t, DefaultCancellationHours, policy.CancellationHours)
}
