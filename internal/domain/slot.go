package domain

import "github.com/m04kA/SMC-BookingEngine/pkg/types"

// Slot кандидат временного слота в выдаче доступности
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}

// GenerateCandidateStarts генерирует минуты начала слотов-кандидатов:
// внутри каждого открытого интервала с шагом granularity от начала
// интервала, пока start + duration помещается в интервал.
// Интервалы приходят из ResolveOpenIntervals упорядоченными и
// непересекающимися, поэтому кандидаты возвращаются по возрастанию
// и без дубликатов.
func GenerateCandidateStarts(intervals []OpenInterval, durationMinutes, granularityMinutes int) []int {
	if durationMinutes <= 0 || granularityMinutes <= 0 {
		return []int{}
	}

	starts := make([]int, 0)
	for _, interval := range intervals {
		for start := interval.Start; start+durationMinutes <= interval.End; start += granularityMinutes {
			starts = append(starts, start)
		}
	}

	return starts
}
