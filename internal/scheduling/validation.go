package scheduling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// ValidateSchedule проверяет документ расписания перед сохранением:
// день недели 0..6 и не более одной записи на день, начало раньше конца,
// перерывы внутри окна и не пересекаются, даты исключений уникальны,
// часы исключения заданы либо оба, либо ни одного
func ValidateSchedule(schedule *domain.BarberSchedule) error {
	seenDays := make(map[int]struct{}, len(schedule.Weekly))
	for i := range schedule.Weekly {
		entry := &schedule.Weekly[i]
		if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek %d is out of range", ErrMalformedSchedule, entry.DayOfWeek)
		}
		if _, ok := seenDays[entry.DayOfWeek]; ok {
			return fmt.Errorf("%w: duplicate entry for dayOfWeek %d", ErrMalformedSchedule, entry.DayOfWeek)
		}
		seenDays[entry.DayOfWeek] = struct{}{}

		window, err := weeklyWindow(entry)
		if err != nil {
			return err
		}

		spans := append([]Span(nil), window.Breaks...)
		sort.Slice(spans, func(a, b int) bool { return spans[a].Start < spans[b].Start })
		for j := 1; j < len(spans); j++ {
			if spans[j].Start < spans[j-1].End {
				return fmt.Errorf("%w: overlapping breaks on dayOfWeek %d", ErrMalformedSchedule, entry.DayOfWeek)
			}
		}
	}

	if len(schedule.Exceptions) > domain.MaxScheduleExceptions {
		return fmt.Errorf("%w: too many exceptions (%d)", ErrMalformedSchedule, len(schedule.Exceptions))
	}

	seenDates := make(map[string]struct{}, len(schedule.Exceptions))
	for i := range schedule.Exceptions {
		exc := &schedule.Exceptions[i]
		exc.Date = strings.TrimSpace(exc.Date)
		if _, err := time.Parse(domain.DateFormat, exc.Date); err != nil {
			return fmt.Errorf("%w: exception date %q", ErrMalformedSchedule, exc.Date)
		}
		if _, ok := seenDates[exc.Date]; ok {
			return fmt.Errorf("%w: duplicate exception for %s", ErrMalformedSchedule, exc.Date)
		}
		seenDates[exc.Date] = struct{}{}

		hasStart := exc.Start != nil && !exc.Start.IsZero()
		hasEnd := exc.End != nil && !exc.End.IsZero()
		if hasStart != hasEnd {
			return fmt.Errorf("%w: exception %s must set both start and end", ErrMalformedSchedule, exc.Date)
		}
		if hasStart {
			if _, err := exceptionWindow(exc); err != nil {
				return err
			}
		}
	}

	return nil
}
