package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrIllegalTransition возвращается, когда из текущего статуса
	// отмена невозможна
	ErrIllegalTransition = errors.New("cancel_booking: illegal status transition")

	// ErrReasonRequired возвращается при отмене без указания причины
	ErrReasonRequired = errors.New("cancel_booking: cancellation reason is required")

	// ErrPastCancellationCutoff возвращается, когда до начала бронирования
	// меньше cancellation_hours
	ErrPastCancellationCutoff = errors.New("cancel_booking: past cancellation cutoff")

	// ErrContention возвращается при исчерпании повторов сериализуемой
	// транзакции - безопасно повторить запрос
	ErrContention = errors.New("cancel_booking: concurrent contention, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
