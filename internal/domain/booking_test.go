package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

func mustTimeString(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to no_show", StatusPending, StatusNoShow, false},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"cancelled to pending", StatusCancelled, StatusPending, true},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, true},
		{"cancelled to completed", StatusCancelled, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
		{"self transition forbidden", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransitionRequiresReason(t *testing.T) {
	// Единственный переход без причины - подтверждение
	assert.False(t, TransitionRequiresReason(StatusPending, StatusConfirmed))

	assert.True(t, TransitionRequiresReason(StatusPending, StatusCancelled))
	assert.True(t, TransitionRequiresReason(StatusConfirmed, StatusCancelled))
	assert.True(t, TransitionRequiresReason(StatusConfirmed, StatusCompleted))
	assert.True(t, TransitionRequiresReason(StatusConfirmed, StatusNoShow))
	assert.True(t, TransitionRequiresReason(StatusCancelled, StatusPending))
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("unknown")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseBookingStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusCancelled.IsTerminal())
}

func TestBooking_OccupiesSlot(t *testing.T) {
	booking := &Booking{Status: StatusPending}
	assert.True(t, booking.OccupiesSlot())

	booking.Status = StatusConfirmed
	assert.True(t, booking.OccupiesSlot())

	// Неактивные бронирования слот не держат
	for _, status := range []BookingStatus{StatusCancelled, StatusCompleted, StatusNoShow} {
		booking.Status = status
		assert.False(t, booking.OccupiesSlot(), "status %s", status)
	}
}

func TestBooking_HasEnded(t *testing.T) {
	booking := &Booking{
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       mustTimeString(t, "14:00"),
		DurationMinutes: 60,
	}

	// День до бронирования
	assert.False(t, booking.HasEnded(time.Date(2025, 10, 14, 23, 0, 0, 0, time.UTC)))

	// В день бронирования до окончания
	assert.False(t, booking.HasEnded(time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)))

	// Ровно в момент окончания - интервал полуоткрытый, уже закончилось
	assert.True(t, booking.HasEnded(time.Date(2025, 10, 15, 15, 0, 0, 0, time.UTC)))

	// На следующий день
	assert.True(t, booking.HasEnded(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)))
}

func TestBooking_ValidateTransition(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

	pastBooking := func(status BookingStatus) *Booking {
		return &Booking{
			Status:          status,
			BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:       mustTimeString(t, "10:00"),
			DurationMinutes: 60,
		}
	}
	futureBooking := func(status BookingStatus) *Booking {
		return &Booking{
			Status:          status,
			BookingDate:     time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC),
			StartTime:       mustTimeString(t, "10:00"),
			DurationMinutes: 60,
		}
	}

	t.Run("confirm without reason", func(t *testing.T) {
		err := futureBooking(StatusPending).ValidateTransition(StatusConfirmed, "", now)
		assert.NoError(t, err)
	})

	t.Run("cancel requires reason", func(t *testing.T) {
		err := futureBooking(StatusConfirmed).ValidateTransition(StatusCancelled, "", now)
		assert.ErrorIs(t, err, ErrReasonRequired)

		err = futureBooking(StatusConfirmed).ValidateTransition(StatusCancelled, "   ", now)
		assert.ErrorIs(t, err, ErrReasonRequired)

		err = futureBooking(StatusConfirmed).ValidateTransition(StatusCancelled, "клиент попросил", now)
		assert.NoError(t, err)
	})

	t.Run("illegal transition", func(t *testing.T) {
		err := pastBooking(StatusPending).ValidateTransition(StatusNoShow, "не пришел", now)
		assert.ErrorIs(t, err, ErrIllegalTransition)

		err = pastBooking(StatusCompleted).ValidateTransition(StatusCancelled, "причина", now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("completed requires elapsed booking", func(t *testing.T) {
		err := futureBooking(StatusConfirmed).ValidateTransition(StatusCompleted, "визит состоялся", now)
		assert.ErrorIs(t, err, ErrBookingNotElapsed)

		err = pastBooking(StatusConfirmed).ValidateTransition(StatusCompleted, "визит состоялся", now)
		assert.NoError(t, err)
	})

	t.Run("no_show requires elapsed booking", func(t *testing.T) {
		err := futureBooking(StatusConfirmed).ValidateTransition(StatusNoShow, "не пришел", now)
		assert.ErrorIs(t, err, ErrBookingNotElapsed)

		err = pastBooking(StatusConfirmed).ValidateTransition(StatusNoShow, "не пришел", now)
		assert.NoError(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		err := futureBooking(StatusPending).ValidateTransition("archived", "причина", now)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestBooking_EndTime(t *testing.T) {
	booking := &Booking{
		StartTime:       mustTimeString(t, "10:30"),
		DurationMinutes: 45,
	}

	end, err := booking.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "11:15", end.String())
}
