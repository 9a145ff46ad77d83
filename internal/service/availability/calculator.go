package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Calculator связывает хранилища с ядром расчета расписания:
// читает расписание и занятые интервалы барбера и передает их в scheduling
type Calculator struct {
	schedules    ScheduleSource
	appointments AppointmentRepository
	settings     scheduling.Settings
	busyStatuses []domain.AppointmentStatus
}

// NewCalculator создает калькулятор доступности
func NewCalculator(
	schedules ScheduleSource,
	appointments AppointmentRepository,
	settings scheduling.Settings,
	countCompletedAsBusy bool,
) *Calculator {
	return &Calculator{
		schedules:    schedules,
		appointments: appointments,
		settings:     settings,
		busyStatuses: domain.BusyStatuses(countCompletedAsBusy),
	}
}

// Settings настройки расчета расписания
func (c *Calculator) Settings() scheduling.Settings {
	return c.settings
}

// Window рабочее окно барбера на дату; nil - барбер не работает
func (c *Calculator) Window(ctx context.Context, barberID int64, date time.Time) (*scheduling.EffectiveWindow, error) {
	schedule, err := c.schedules.GetSchedule(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("availability: schedule of barber=%d: %w", barberID, err)
	}

	window, err := scheduling.ResolveDaySchedule(schedule.Weekly, schedule.Exceptions, date, c.settings)
	if err != nil {
		return nil, fmt.Errorf("availability: barber=%d: %w", barberID, err)
	}
	return window, nil
}

// Booked занятые интервалы барбера в календарный день date.
// Внутри транзакции строки блокируются
func (c *Calculator) Booked(ctx context.Context, barberID int64, date time.Time, excludeID *int64) ([]domain.BookedInterval, error) {
	dayStart := c.settings.CivilDate(date)

	booked, err := c.appointments.GetBookedIntervals(ctx, appointmentRepo.IntervalsFilter{
		BarberID:  barberID,
		From:      dayStart,
		To:        dayStart.AddDate(0, 0, 1),
		Statuses:  c.busyStatuses,
		ExcludeID: excludeID,
	})
	if err != nil {
		return nil, fmt.Errorf("availability: booked intervals of barber=%d: %w", barberID, err)
	}
	return booked, nil
}

// BarberSlots доступные слоты одного барбера
func (c *Calculator) BarberSlots(
	ctx context.Context,
	barberID int64,
	date time.Time,
	durationMinutes int,
	now time.Time,
) ([]domain.TimeSlot, error) {
	window, err := c.Window(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return []domain.TimeSlot{}, nil
	}

	booked, err := c.Booked(ctx, barberID, date, nil)
	if err != nil {
		return nil, err
	}

	return scheduling.GenerateSlots(window, durationMinutes, booked, date, now, c.settings), nil
}

// AnyBarberSlots объединенные слоты барберов для режима "любой барбер"
func (c *Calculator) AnyBarberSlots(
	ctx context.Context,
	barberIDs []int64,
	date time.Time,
	durationMinutes int,
	now time.Time,
	onFailure func(barberID int64, err error),
) []domain.TimeSlot {
	return scheduling.AggregateAnyBarber(ctx, barberIDs,
		func(ctx context.Context, barberID int64) ([]domain.TimeSlot, error) {
			return c.BarberSlots(ctx, barberID, date, durationMinutes, now)
		},
		onFailure,
	)
}

// IsFree проверяет, что слот с началом start можно занять.
// Используется внутри транзакции создания и переноса записи
func (c *Calculator) IsFree(
	ctx context.Context,
	barberID int64,
	date time.Time,
	start types.TimeString,
	durationMinutes int,
	now time.Time,
	excludeID *int64,
) (bool, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return false, fmt.Errorf("availability: %w", err)
	}

	window, err := c.Window(ctx, barberID, date)
	if err != nil {
		return false, err
	}
	if window == nil {
		return false, nil
	}

	booked, err := c.Booked(ctx, barberID, date, excludeID)
	if err != nil {
		return false, err
	}

	return scheduling.IsSlotFree(window, startMinutes, durationMinutes, booked, date, now, c.settings), nil
}
