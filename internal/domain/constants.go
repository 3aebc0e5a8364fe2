package domain

// Значения политики по умолчанию (когда для заведения политика не настроена)
const (
	DefaultAdvanceBookingDays  = 30 // 0 = без ограничения горизонта
	DefaultAdvanceBookingHours = 1
	DefaultCancellationHours   = 24 // 0 = отмена возможна до времени начала

	DefaultGranularityMinutes = 15
)

// Бизнес-ограничения валидации
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 часов

	MinPartySize = 1
	MaxPartySize = 100

	MaxAdvanceBookingDays  = 365
	MaxAdvanceBookingHours = 168 // неделя
	MaxCancellationHours   = 168

	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, при которых бронирование занимает слот
// и участвует в проверке пересечений
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, при которых бронирование слот не занимает
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
