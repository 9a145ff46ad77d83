package models

import (
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Break перерыв
type Break struct {
	Start string `json:"start"` // "13:00"
	End   string `json:"end"`
}

// WeeklyEntry рабочие часы в день недели
type WeeklyEntry struct {
	DayOfWeek int     `json:"dayOfWeek"` // 0 = воскресенье
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Breaks    []Break `json:"breaks"`
}

// Exception исключение на дату
type Exception struct {
	Date   string  `json:"date"` // "2025-12-24"
	Closed bool    `json:"closed"`
	Start  *string `json:"start,omitempty"`
	End    *string `json:"end,omitempty"`
}

// Request модели

// UpdateScheduleRequest запрос на замену расписания барбера
type UpdateScheduleRequest struct {
	BarberID   int64         `json:"-"`
	Weekly     []WeeklyEntry `json:"weekly"`
	Exceptions []Exception   `json:"exceptions"`
}

// ToDomainSchedule конвертирует request в domain модель
func (r *UpdateScheduleRequest) ToDomainSchedule() *domain.BarberSchedule {
	schedule := &domain.BarberSchedule{
		BarberID:   r.BarberID,
		Weekly:     make([]domain.WeeklyScheduleEntry, 0, len(r.Weekly)),
		Exceptions: make([]domain.ScheduleException, 0, len(r.Exceptions)),
	}

	for _, w := range r.Weekly {
		entry := domain.WeeklyScheduleEntry{
			DayOfWeek: w.DayOfWeek,
			Start:     types.TimeString(w.Start),
			End:       types.TimeString(w.End),
			Breaks:    make([]domain.Break, 0, len(w.Breaks)),
		}
		for _, b := range w.Breaks {
			entry.Breaks = append(entry.Breaks, domain.Break{
				Start: types.TimeString(b.Start),
				End:   types.TimeString(b.End),
			})
		}
		schedule.Weekly = append(schedule.Weekly, entry)
	}

	for _, e := range r.Exceptions {
		exc := domain.ScheduleException{Date: e.Date, Closed: e.Closed}
		if e.Start != nil {
			start := types.TimeString(*e.Start)
			exc.Start = &start
		}
		if e.End != nil {
			end := types.TimeString(*e.End)
			exc.End = &end
		}
		schedule.Exceptions = append(schedule.Exceptions, exc)
	}

	return schedule
}

// Response модели

// ScheduleResponse ответ с расписанием барбера
type ScheduleResponse struct {
	BarberID   int64         `json:"barberId"`
	Weekly     []WeeklyEntry `json:"weekly"`
	Exceptions []Exception   `json:"exceptions"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.BarberSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		BarberID:   s.BarberID,
		Weekly:     make([]WeeklyEntry, 0, len(s.Weekly)),
		Exceptions: make([]Exception, 0, len(s.Exceptions)),
	}

	for _, w := range s.Weekly {
		entry := WeeklyEntry{
			DayOfWeek: w.DayOfWeek,
			Start:     w.Start.String(),
			End:       w.End.String(),
			Breaks:    make([]Break, 0, len(w.Breaks)),
		}
		for _, b := range w.Breaks {
			entry.Breaks = append(entry.Breaks, Break{Start: b.Start.String(), End: b.End.String()})
		}
		resp.Weekly = append(resp.Weekly, entry)
	}

	for _, e := range s.Exceptions {
		exc := Exception{Date: e.Date, Closed: e.Closed}
		if e.Start != nil {
			start := e.Start.String()
			exc.Start = &start
		}
		if e.End != nil {
			end := e.End.String()
			exc.End = &end
		}
		resp.Exceptions = append(resp.Exceptions, exc)
	}

	return resp
}
