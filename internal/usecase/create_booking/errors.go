package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCustomerNotFound возвращается, когда указанный клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooSoon возвращается, когда до начала меньше booking_advance_hours
	ErrTooSoon = errors.New("create_booking: booking is too soon")

	// ErrTooFarOut возвращается, когда дата дальше booking_advance_days
	ErrTooFarOut = errors.New("create_booking: date is too far in the future")

	// ErrVenueClosed возвращается, когда заведение закрыто в указанную дату
	ErrVenueClosed = errors.New("create_booking: venue is closed on this date")

	// ErrOutsideOpeningHours возвращается, когда слот не помещается в окна работы
	ErrOutsideOpeningHours = errors.New("create_booking: slot is outside opening hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// бронированием ресурса
	ErrSlotConflict = errors.New("create_booking: slot is already booked")

	// ErrContention возвращается при исчерпании повторов сериализуемой
	// транзакции - безопасно повторить запрос
	ErrContention = errors.New("create_booking: concurrent booking contention, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
