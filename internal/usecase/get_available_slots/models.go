package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	VenueID            int64
	StaffID            *int64    // ресурс: конкретный сотрудник или заведение целиком
	Date               time.Time // дата без времени
	DurationMinutes    int       // длительность услуги
	GranularityMinutes int       // шаг сетки; 0 = значение по умолчанию
	ExcludeBookingID   *int64    // исключить бронирование из проверки (перенос)
}

// Response модель ответа со слотами на день
type Response struct {
	VenueID int64
	StaffID *int64
	Date    time.Time
	Slots   []domain.Slot // по возрастанию времени начала, каждый помечен доступностью
}
