package scheduling

import (
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// Slots перебирает доступные слоты длительностью durationMinutes внутри окна с шагом settings.Stride.
//
// Слот пропускается, если он:
//   - пересекается с перерывом;
//   - строго пересекается с существующей записью (касание границами не конфликт);
//   - начинается не позже now, когда date - сегодня в зоне бизнеса.
//
// Курсор сдвигается на шаг независимо от результата проверок.
// Последовательность ленивая и может перебираться повторно.
func Slots(
	window *EffectiveWindow,
	durationMinutes int,
	booked []domain.BookedInterval,
	date time.Time,
	now time.Time,
	settings Settings,
) iter.Seq[domain.TimeSlot] {
	return func(yield func(domain.TimeSlot) bool) {
		if window == nil || durationMinutes <= 0 {
			return
		}

		stride := settings.strideMinutes()
		today := settings.IsToday(date, now)

		for cursor := window.Start; cursor+durationMinutes <= window.End; cursor += stride {
			end := cursor + durationMinutes

			if window.inBreak(cursor, end) {
				continue
			}

			slotStart := settings.At(date, cursor)
			slotEnd := settings.At(date, end)
			if conflicts(booked, slotStart, slotEnd) {
				continue
			}

			if today && !slotStart.After(now) {
				continue
			}

			if !yield(domain.TimeSlot{
				StartTime: clock(cursor),
				EndTime:   clock(end),
				Available: true,
			}) {
				return
			}
		}
	}
}

// GenerateSlots собирает Slots в срез; пустой результат - пустой срез, не nil
func GenerateSlots(
	window *EffectiveWindow,
	durationMinutes int,
	booked []domain.BookedInterval,
	date time.Time,
	now time.Time,
	settings Settings,
) []domain.TimeSlot {
	slots := slices.Collect(Slots(window, durationMinutes, booked, date, now, settings))
	if slots == nil {
		return []domain.TimeSlot{}
	}
	return slots
}

// IsSlotFree проверяет конкретный интервал тем же правилом, что и генератор.
// Используется при создании и переносе записи внутри транзакции
func IsSlotFree(
	window *EffectiveWindow,
	startMinutes int,
	durationMinutes int,
	booked []domain.BookedInterval,
	date time.Time,
	now time.Time,
	settings Settings,
) bool {
	for slot := range Slots(window, durationMinutes, booked, date, now, settings) {
		m, err := slot.StartTime.Minutes()
		if err != nil {
			return false
		}
		if m == startMinutes {
			return true
		}
		if m > startMinutes {
			return false
		}
	}
	return false
}

func conflicts(booked []domain.BookedInterval, start, end time.Time) bool {
	for _, b := range booked {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
