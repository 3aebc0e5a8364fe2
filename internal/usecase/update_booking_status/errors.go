package update_booking_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("update_booking_status: invalid target status")

	// ErrIllegalTransition возвращается, когда переход запрещен таблицей
	// переходов
	ErrIllegalTransition = errors.New("update_booking_status: illegal status transition")

	// ErrReasonRequired возвращается, когда для перехода не указана причина
	ErrReasonRequired = errors.New("update_booking_status: reason is required")

	// ErrBookingNotElapsed возвращается при попытке отметить completed или
	// no_show до окончания бронирования
	ErrBookingNotElapsed = errors.New("update_booking_status: booking has not ended yet")

	// ErrSlotConflict возвращается, когда reopen невозможен - слот уже
	// занят другим бронированием
	ErrSlotConflict = errors.New("update_booking_status: slot is already booked")

	// ErrContention возвращается при исчерпании повторов сериализуемой
	// транзакции - безопасно повторить запрос
	ErrContention = errors.New("update_booking_status: concurrent contention, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
