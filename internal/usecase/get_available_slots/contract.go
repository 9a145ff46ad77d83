package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	// ListIDsByService активные барберы, оказывающие услугу, по возрастанию ID
	ListIDsByService(ctx context.Context, serviceID int64) ([]int64, error)
	OffersService(ctx context.Context, barberID, serviceID int64) (bool, error)
}

// AvailabilityCalculator расчет слотов поверх расписания и занятых интервалов
type AvailabilityCalculator interface {
	Settings() scheduling.Settings
	BarberSlots(ctx context.Context, barberID int64, date time.Time, durationMinutes int, now time.Time) ([]domain.TimeSlot, error)
	AnyBarberSlots(
		ctx context.Context,
		barberIDs []int64,
		date time.Time,
		durationMinutes int,
		now time.Time,
		onFailure func(barberID int64, err error),
	) []domain.TimeSlot
}

// Metrics интерфейс метрик расчета слотов
type Metrics interface {
	ObserveSlotsReturned(mode string, count int)
	IncBarberScheduleFailure(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
