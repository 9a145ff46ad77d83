package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	ListIDsByService(ctx context.Context, serviceID int64) ([]int64, error)
	OffersService(ctx context.Context, barberID, serviceID int64) (bool, error)
}

// AvailabilityCalculator расчет и проверка слотов
type AvailabilityCalculator interface {
	Settings() scheduling.Settings
	AnyBarberSlots(
		ctx context.Context,
		barberIDs []int64,
		date time.Time,
		durationMinutes int,
		now time.Time,
		onFailure func(barberID int64, err error),
	) []domain.TimeSlot
	IsFree(
		ctx context.Context,
		barberID int64,
		date time.Time,
		start types.TimeString,
		durationMinutes int,
		now time.Time,
		excludeID *int64,
	) (bool, error)
}

// Notifier рассылает события по записям после фиксации транзакции
type Notifier interface {
	Dispatch(ctx context.Context, eventType domain.EventType, appointment *domain.Appointment)
}

// Metrics интерфейс метрик мутаций
type Metrics interface {
	IncAppointmentMutation(event string)
	IncBarberScheduleFailure(reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
