package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotReschedulable возвращается, когда статус бронирования
	// не допускает перенос
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrPastCancellationCutoff возвращается, когда до старого времени
	// начала меньше cancellation_hours
	ErrPastCancellationCutoff = errors.New("reschedule_booking: past cancellation cutoff")

	// ErrTooSoon возвращается, когда до нового начала меньше booking_advance_hours
	ErrTooSoon = errors.New("reschedule_booking: new time is too soon")

	// ErrTooFarOut возвращается, когда новая дата дальше booking_advance_days
	ErrTooFarOut = errors.New("reschedule_booking: new date is too far in the future")

	// ErrVenueClosed возвращается, когда заведение закрыто в новую дату
	ErrVenueClosed = errors.New("reschedule_booking: venue is closed on this date")

	// ErrOutsideOpeningHours возвращается, когда новый слот не помещается
	// в окна работы
	ErrOutsideOpeningHours = errors.New("reschedule_booking: slot is outside opening hours")

	// ErrSlotConflict возвращается, когда новый интервал пересекается
	// с другим бронированием ресурса
	ErrSlotConflict = errors.New("reschedule_booking: slot is already booked")

	// ErrContention возвращается при исчерпании повторов сериализуемой
	// транзакции - безопасно повторить запрос
	ErrContention = errors.New("reschedule_booking: concurrent contention, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
