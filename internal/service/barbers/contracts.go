package barbers

import (
	"context"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ScheduleStore хранилище расписаний (кэш поверх репозитория, сбрасывается при записи)
type ScheduleStore interface {
	GetSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error)
	UpdateSchedule(ctx context.Context, schedule *domain.BarberSchedule) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
