package domain

// Проверка пересечений интервалов бронирований.
// Времена сравниваются как минуты дня; интервалы полуоткрытые [start, end),
// поэтому граничащие бронирования (конец одного = начало другого)
// пересечением не считаются.

// intervalsOverlap проверяет пересечение [aStart, aEnd) и [bStart, bEnd)
func intervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// HasConflict возвращает true, если интервал [startMinute, endMinute)
// пересекается хотя бы с одним бронированием, занимающим слот.
// excludeBookingID исключает одно бронирование из проверки - это позволяет
// переносу переиспользовать собственный слот (0 = ничего не исключать).
func HasConflict(bookings []*Booking, startMinute, endMinute int, excludeBookingID int64) bool {
	for _, booking := range bookings {
		if !booking.OccupiesSlot() {
			continue
		}
		if excludeBookingID != 0 && booking.ID == excludeBookingID {
			continue
		}

		bookingStart, err := booking.StartTime.MinuteOfDay()
		if err != nil {
			continue
		}
		bookingEnd := bookingStart + booking.DurationMinutes

		if intervalsOverlap(startMinute, endMinute, bookingStart, bookingEnd) {
			return true
		}
	}

	return false
}
