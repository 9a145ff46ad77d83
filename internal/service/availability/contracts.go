package availability

import (
	"context"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
)

// ScheduleSource источник расписаний барберов (кэш поверх репозитория)
type ScheduleSource interface {
	GetSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetBookedIntervals(ctx context.Context, filter appointmentRepo.IntervalsFilter) ([]domain.BookedInterval, error)
}
