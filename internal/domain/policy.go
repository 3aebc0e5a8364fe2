package domain

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

var (
	// ErrTooSoon возвращается, когда до начала бронирования меньше
	// booking_advance_hours
	ErrTooSoon = errors.New("domain: booking is too soon")

	// ErrTooFarOut возвращается, когда дата бронирования дальше
	// booking_advance_days от текущей даты
	ErrTooFarOut = errors.New("domain: booking is too far in the future")

	// ErrPastCancellationCutoff возвращается, когда до начала бронирования
	// меньше cancellation_hours
	ErrPastCancellationCutoff = errors.New("domain: past cancellation cutoff")
)

// VenuePolicy темпоральные правила заведения, читаются движком как view.
// Все значения неотрицательные; ноль отключает соответствующее ограничение
// (для CancellationHours - отмена разрешена вплоть до времени начала).
type VenuePolicy struct {
	VenueID int64

	AdvanceBookingDays  int
	AdvanceBookingHours int
	CancellationHours   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultPolicy возвращает политику по умолчанию для заведения без настроек
func DefaultPolicy(venueID int64) *VenuePolicy {
	return &VenuePolicy{
		VenueID:             venueID,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
		AdvanceBookingHours: DefaultAdvanceBookingHours,
		CancellationHours:   DefaultCancellationHours,
	}
}

// CheckBookingWindow проверяет окно создания/переноса: запрошенное время
// должно быть не раньше now + AdvanceBookingHours и не дальше
// AdvanceBookingDays от текущей даты. Возвращает ErrTooSoon либо
// ErrTooFarOut - раздельно, чтобы вызывающая сторона могла показать
// точное сообщение.
func (p *VenuePolicy) CheckBookingWindow(date time.Time, start types.TimeString, now time.Time) error {
	startAt, err := CombineDateTime(date, start, now.Location())
	if err != nil {
		return err
	}

	minStart := now.Add(time.Duration(p.AdvanceBookingHours) * time.Hour)
	if startAt.Before(minStart) {
		return ErrTooSoon
	}

	if p.AdvanceBookingDays > 0 {
		maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, p.AdvanceBookingDays)
		dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
		if dateOnly.After(maxDate) {
			return ErrTooFarOut
		}
	}

	return nil
}

// CheckCancellationCutoff проверяет окно отмены/переноса: до текущего
// времени начала бронирования должно оставаться не меньше CancellationHours.
// При нулевом окне отмена разрешена вплоть до времени начала.
func (p *VenuePolicy) CheckCancellationCutoff(date time.Time, start types.TimeString, now time.Time) error {
	startAt, err := CombineDateTime(date, start, now.Location())
	if err != nil {
		return err
	}

	cutoff := startAt.Add(-time.Duration(p.CancellationHours) * time.Hour)
	if now.After(cutoff) {
		return ErrPastCancellationCutoff
	}

	return nil
}

// CombineDateTime собирает момент времени из календарной даты и минуты дня
func CombineDateTime(date time.Time, t types.TimeString, loc *time.Location) (time.Time, error) {
	minute, err := t.MinuteOfDay()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, loc), nil
}
