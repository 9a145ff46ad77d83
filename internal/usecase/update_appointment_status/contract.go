package update_appointment_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, reason *string) error
}

// AvailabilityCalculator проверка слота при возврате записи в расписание
type AvailabilityCalculator interface {
	Settings() scheduling.Settings
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

// Metrics интерфейс метрик смены статуса
type Metrics interface {
	IncTransitionDecision(status string, allowed bool)
	IncAppointmentMutation(event string)
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
