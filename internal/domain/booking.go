package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

var (
	// ErrIllegalTransition возвращается при недопустимом переходе статуса
	ErrIllegalTransition = errors.New("domain: illegal status transition")

	// ErrReasonRequired возвращается, когда переход требует непустую причину
	ErrReasonRequired = errors.New("domain: transition requires a reason")

	// ErrBookingNotElapsed возвращается при попытке завершить бронирование,
	// время которого еще не прошло
	ErrBookingNotElapsed = errors.New("domain: booking has not ended yet")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("domain: invalid booking status")
)

// legalTransitions таблица допустимых переходов статусов.
// cancelled -> pending/confirmed - административное восстановление отмененного
// бронирования; completed и no_show терминальны.
var legalTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
	StatusCancelled: {StatusPending, StatusConfirmed},
	StatusCompleted: {},
	StatusNoShow:    {},
}

// IsValid возвращает true для известного статуса
func (s BookingStatus) IsValid() bool {
	_, ok := legalTransitions[s]
	return ok
}

// IsTerminal возвращает true, если из статуса нет переходов
func (s BookingStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// ParseBookingStatus конвертирует строку в BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// CanTransition проверяет переход по таблице допустимых переходов
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionRequiresReason возвращает true, если переход требует причину.
// Единственный переход без причины - рутинное подтверждение pending -> confirmed.
func TransitionRequiresReason(from, to BookingStatus) bool {
	return !(from == StatusPending && to == StatusConfirmed)
}

// RequiresElapsedBooking возвращает true для статусов, достижимых только
// после того, как время бронирования прошло
func RequiresElapsedBooking(to BookingStatus) bool {
	return to == StatusCompleted || to == StatusNoShow
}

// Booking бронирование ресурса (заведение или конкретный сотрудник)
// на временной интервал [StartTime, StartTime+Duration)
type Booking struct {
	ID    int64
	Token string // opaque credential для анонимного доступа

	VenueID   int64
	StaffID   *int64 // nil = бронирование на уровне заведения
	ServiceID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int

	CustomerID      *int64 // nil = анонимное бронирование (доступ по токену)
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SpecialRequests *string

	Status             BookingStatus
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания бронирования
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// OccupiesSlot возвращает true, если бронирование занимает слот
// (участвует в проверке пересечений)
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled возвращает true, если бронирование можно перенести
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled возвращает true для отмененного бронирования
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HasEnded возвращает true, если интервал бронирования целиком в прошлом
// относительно now (по дате и минуте дня, без таймзонной арифметики)
func (b *Booking) HasEnded(now time.Time) bool {
	dateOnly := time.Date(b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(), 0, 0, 0, 0, now.Location())
	nowDateOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowDateOnly) {
		return true
	}
	if dateOnly.After(nowDateOnly) {
		return false
	}

	startMinute, err := b.StartTime.MinuteOfDay()
	if err != nil {
		return false
	}
	endMinute := startMinute + b.DurationMinutes
	nowMinute := now.Hour()*60 + now.Minute()

	return endMinute <= nowMinute
}

// ValidateTransition проверяет допустимость перехода в статус to:
// таблица переходов, требование причины и темпоральные ограничения
// для completed/no_show. Не мутирует бронирование.
func (b *Booking) ValidateTransition(to BookingStatus, reason string, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}

	if !CanTransition(b.Status, to) {
		return ErrIllegalTransition
	}

	if TransitionRequiresReason(b.Status, to) && strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	if RequiresElapsedBooking(to) && !b.HasEnded(now) {
		return ErrBookingNotElapsed
	}

	return nil
}

// BookingsFilter фильтр выборки бронирований заведения
type BookingsFilter struct {
	VenueID int64 // обязательный параметр

	// Скоуп ресурса: StaffID задан - только бронирования этого сотрудника;
	// UnassignedOnly - только бронирования без сотрудника (staff_id IS NULL);
	// оба пустые - все бронирования заведения.
	StaffID        *int64
	UnassignedOnly bool

	StartDate *time.Time
	EndDate   *time.Time

	Status          *BookingStatus
	IncludeInactive bool // включать ли cancelled/completed/no_show
}

// ResourceFilter возвращает фильтр для выборки бронирований одного ресурса
// на одну дату - ровно тот набор, который участвует в проверке пересечений
func ResourceFilter(venueID int64, staffID *int64, date time.Time) BookingsFilter {
	return BookingsFilter{
		VenueID:        venueID,
		StaffID:        staffID,
		UnassignedOnly: staffID == nil,
		StartDate:      &date,
		EndDate:        &date,
	}
}
