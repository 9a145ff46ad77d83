package dispatcher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// DefaultTimeout срок доставки одного события, если он не задан
const DefaultTimeout = 5 * time.Second

// Sink получатель событий по записям (сервис уведомлений, Kafka)
type Sink interface {
	Name() string
	Send(ctx context.Context, event domain.AppointmentEvent) error
}

// Logger интерфейс логгера
type Logger interface {
	Error(format string, v ...interface{})
}

// Metrics учет неотправленных событий
type Metrics interface {
	IncEventDeliveryFailure(sink string)
}

// Dispatcher рассылает событие всем получателям.
// Ошибка доставки логируется и не влияет на уже зафиксированную мутацию
type Dispatcher struct {
	sinks   []Sink
	metrics Metrics
	logger  Logger
	timeout time.Duration
}

// New создает рассыльщик; nil-получатели пропускаются.
// Неположительный timeout заменяется на DefaultTimeout
func New(logger Logger, metrics Metrics, timeout time.Duration, sinks ...Sink) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	active := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return &Dispatcher{
		sinks:   active,
		metrics: metrics,
		logger:  logger,
		timeout: timeout,
	}
}

// Dispatch отправляет событие о записи a
func (d *Dispatcher) Dispatch(ctx context.Context, eventType domain.EventType, a *domain.Appointment) {
	if len(d.sinks) == 0 {
		return
	}

	event := domain.NewAppointmentEvent(uuid.NewString(), eventType, a, time.Now().UTC())

	// отмена запроса клиентом не должна обрывать доставку
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	for _, sink := range d.sinks {
		if err := sink.Send(sendCtx, event); err != nil {
			d.logger.Error("Dispatcher: %s failed to deliver %s for appointment=%d, graceful degradation applied: %v",
				sink.Name(), event.Type, event.AppointmentID, err)
			if d.metrics != nil {
				d.metrics.IncEventDeliveryFailure(sink.Name())
			}
		}
	}
}
