package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Span интервал внутри дня в минутах от полуночи, [Start, End)
type Span struct {
	Start int
	End   int
}

func (s Span) overlaps(start, end int) bool {
	return start < s.End && end > s.Start
}

// EffectiveWindow рабочее окно барбера на конкретную дату
type EffectiveWindow struct {
	Start  int
	End    int
	Breaks []Span
}

func (w *EffectiveWindow) inBreak(start, end int) bool {
	for _, b := range w.Breaks {
		if b.overlaps(start, end) {
			return true
		}
	}
	return false
}

// ResolveDaySchedule вычисляет рабочее окно барбера на дату.
//
// Порядок разрешения:
//  1. исключение на дату с closed=true - выходной (nil);
//  2. исключение с началом и концом - окно исключения без перерывов;
//  3. иначе недельный шаблон по дню недели в зоне бизнеса; нет записи - выходной.
//
// Исключение без часов и без closed ничего не меняет.
func ResolveDaySchedule(
	weekly []domain.WeeklyScheduleEntry,
	exceptions []domain.ScheduleException,
	date time.Time,
	settings Settings,
) (*EffectiveWindow, error) {
	day := settings.CivilDate(date)
	key := day.Format(domain.DateFormat)

	for i := range exceptions {
		exc := &exceptions[i]
		if strings.TrimSpace(exc.Date) != key {
			continue
		}
		if exc.Closed {
			return nil, nil
		}
		if exc.HasHours() {
			return exceptionWindow(exc)
		}
		break
	}

	weekday := int(day.Weekday())
	for i := range weekly {
		if weekly[i].DayOfWeek == weekday {
			return weeklyWindow(&weekly[i])
		}
	}

	return nil, nil
}

func exceptionWindow(exc *domain.ScheduleException) (*EffectiveWindow, error) {
	start, end, err := parseRange(*exc.Start, *exc.End)
	if err != nil {
		return nil, fmt.Errorf("%w: exception %s: %v", ErrMalformedSchedule, exc.Date, err)
	}
	return &EffectiveWindow{Start: start, End: end, Breaks: []Span{}}, nil
}

func weeklyWindow(entry *domain.WeeklyScheduleEntry) (*EffectiveWindow, error) {
	start, end, err := parseRange(entry.Start, entry.End)
	if err != nil {
		return nil, fmt.Errorf("%w: day %d: %v", ErrMalformedSchedule, entry.DayOfWeek, err)
	}

	breaks := make([]Span, 0, len(entry.Breaks))
	for _, b := range entry.Breaks {
		bStart, bEnd, err := parseRange(b.Start, b.End)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d break: %v", ErrMalformedSchedule, entry.DayOfWeek, err)
		}
		if bStart < start || bEnd > end {
			return nil, fmt.Errorf("%w: day %d break %s-%s is outside %s-%s",
				ErrMalformedSchedule, entry.DayOfWeek, b.Start, b.End, entry.Start, entry.End)
		}
		breaks = append(breaks, Span{Start: bStart, End: bEnd})
	}

	return &EffectiveWindow{Start: start, End: end, Breaks: breaks}, nil
}

func parseRange(from, to types.TimeString) (int, int, error) {
	start, err := from.Minutes()
	if err != nil {
		return 0, 0, err
	}
	end, err := to.Minutes()
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("start %s is not before end %s", from, to)
	}
	return start, end, nil
}

func clock(minutes int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}
