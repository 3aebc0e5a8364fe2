package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// buildSlots строит выдачу слотов: кандидаты из сетки по открытым
// интервалам, каждый помечается доступностью по пересечениям с
// бронированиями ресурса
func buildSlots(
	intervals []domain.OpenInterval,
	bookings []*domain.Booking,
	durationMinutes int,
	granularityMinutes int,
	minStartMinute int,
	excludeBookingID int64,
) ([]domain.Slot, error) {
	starts := domain.GenerateCandidateStarts(intervals, durationMinutes, granularityMinutes)

	slots := make([]domain.Slot, 0, len(starts))
	for _, start := range starts {
		// Слоты раньше минимального допустимого времени не показываем
		// (прошедшее время и lead time для сегодняшней даты)
		if start < minStartMinute {
			continue
		}

		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}

		available := !domain.HasConflict(bookings, start, start+durationMinutes, excludeBookingID)

		slots = append(slots, domain.Slot{
			StartTime:       startTime,
			DurationMinutes: durationMinutes,
			Available:       available,
		})
	}

	return slots, nil
}

// minAllowedStartMinute возвращает минимальную минуту начала слота на
// запрошенную дату: слот должен начинаться не раньше now + advance_hours,
// как и проверка окна при создании. Lead time, переваливший через полночь,
// закрывает начало следующего дня, а не только сегодняшнего.
func minAllowedStartMinute(date, now time.Time, advanceHours int) int {
	cutoff := now.Add(time.Duration(advanceHours) * time.Hour)

	cutoffDay := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, cutoff.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch {
	case cutoffDay.Before(dateOnly):
		return 0
	case cutoffDay.After(dateOnly):
		// Cutoff за пределами запрошенной даты - день закрыт целиком
		return 24 * 60
	default:
		return cutoff.Hour()*60 + cutoff.Minute()
	}
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
