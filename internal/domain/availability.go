package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// AvailabilityRule повторяющееся окно работы для дня недели.
// Правило либо действует на все заведение (StaffID = nil), либо только
// на конкретного сотрудника. На один день может приходиться несколько
// правил (например, смены с перерывом) - резолвер объединяет их.
type AvailabilityRule struct {
	ID        int64
	VenueID   int64
	StaffID   *int64
	Weekday   int // 0 = воскресенье ... 6 = суббота, как time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// OpenInterval полуоткрытый интервал [Start, End) в минутах дня
type OpenInterval struct {
	Start int
	End   int
}

// Contains возвращает true, если [start, end) целиком лежит в интервале
func (i OpenInterval) Contains(start, end int) bool {
	return start >= i.Start && end <= i.End
}

// ResolveOpenIntervals возвращает упорядоченное объединение окон работы
// ресурса на день. Если для сотрудника есть собственные правила, действуют
// только они; иначе применяются правила уровня заведения. Неактивные
// правила и правила с некорректным временем игнорируются.
// Пустой результат означает, что заведение закрыто.
func ResolveOpenIntervals(rules []*AvailabilityRule, staffID *int64) []OpenInterval {
	matched := selectResourceRules(rules, staffID)

	intervals := make([]OpenInterval, 0, len(matched))
	for _, rule := range matched {
		start, err := rule.StartTime.MinuteOfDay()
		if err != nil {
			continue
		}
		end, err := rule.EndTime.MinuteOfDay()
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		intervals = append(intervals, OpenInterval{Start: start, End: end})
	}

	return mergeIntervals(intervals)
}

// selectResourceRules выбирает правила для ресурса: персональные правила
// сотрудника имеют приоритет над правилами заведения
func selectResourceRules(rules []*AvailabilityRule, staffID *int64) []*AvailabilityRule {
	if staffID != nil {
		staffRules := make([]*AvailabilityRule, 0)
		for _, rule := range rules {
			if rule.IsActive && rule.StaffID != nil && *rule.StaffID == *staffID {
				staffRules = append(staffRules, rule)
			}
		}
		if len(staffRules) > 0 {
			return staffRules
		}
	}

	venueRules := make([]*AvailabilityRule, 0)
	for _, rule := range rules {
		if rule.IsActive && rule.StaffID == nil {
			venueRules = append(venueRules, rule)
		}
	}
	return venueRules
}

// mergeIntervals сортирует и объединяет пересекающиеся и смежные интервалы
func mergeIntervals(intervals []OpenInterval) []OpenInterval {
	if len(intervals) == 0 {
		return []OpenInterval{}
	}

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start == intervals[j].Start {
			return intervals[i].End < intervals[j].End
		}
		return intervals[i].Start < intervals[j].Start
	})

	merged := []OpenInterval{intervals[0]}
	for _, next := range intervals[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// WeekdayOf возвращает день недели даты в нумерации AvailabilityRule
func WeekdayOf(date time.Time) int {
	return int(date.Weekday())
}
