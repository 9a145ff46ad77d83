package domain

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Barber барбер салона
type Barber struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Break перерыв внутри рабочего дня
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklyScheduleEntry рабочие часы барбера в конкретный день недели.
// Отсутствие записи для дня означает выходной
type WeeklyScheduleEntry struct {
	DayOfWeek int              `json:"dayOfWeek"` // 0 = воскресенье
	Start     types.TimeString `json:"start"`
	End       types.TimeString `json:"end"`
	Breaks    []Break          `json:"breaks"`
}

// ScheduleException переопределение расписания на конкретную дату
type ScheduleException struct {
	Date   string            `json:"date"` // YYYY-MM-DD
	Closed bool              `json:"closed"`
	Start  *types.TimeString `json:"start,omitempty"`
	End    *types.TimeString `json:"end,omitempty"`
}

// HasHours возвращает true, если исключение задает собственное рабочее окно
func (e *ScheduleException) HasHours() bool {
	return e.Start != nil && e.End != nil && !e.Start.IsZero() && !e.End.IsZero()
}

// BarberSchedule документ расписания барбера (хранится в jsonb)
type BarberSchedule struct {
	BarberID   int64                 `json:"barberId"`
	Weekly     []WeeklyScheduleEntry `json:"weekly"`
	Exceptions []ScheduleException   `json:"exceptions"`
}
