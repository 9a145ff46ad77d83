package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса.
// Методы безопасно вызывать на nil - тогда метрики не пишутся
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	SlotsReturned             *prometheus.HistogramVec
	BarberScheduleFailures    *prometheus.CounterVec
	TransitionDecisions       *prometheus.CounterVec
	AppointmentMutationsTotal *prometheus.CounterVec
	ScheduleCacheLookups      *prometheus.CounterVec
	EventDeliveryFailures     *prometheus.CounterVec
}

// New создает и регистрирует метрики в указанном registerer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "db_query_errors_total",
			Help:      "Database query errors.",
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Open connections in the pool.",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use.",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Idle connections in the pool.",
		}, []string{"service"}),
		SlotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "available_slots_returned",
			Help:      "Number of available slots returned per request.",
			Buckets:   []float64{0, 1, 5, 10, 20, 40, 80},
		}, []string{"mode"}),
		BarberScheduleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "barber_schedule_failures_total",
			Help:      "Barbers skipped while aggregating slots because their schedule could not be computed.",
		}, []string{"reason"}),
		TransitionDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "appointment_transition_decisions_total",
			Help:      "Transition validator decisions by target status.",
		}, []string{"status", "decision"}),
		AppointmentMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "appointment_mutations_total",
			Help:      "Committed appointment mutations.",
		}, []string{"event"}),
		ScheduleCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "schedule_cache_lookups_total",
			Help:      "Barber schedule cache lookups.",
		}, []string{"result"}),
		EventDeliveryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "event_delivery_failures_total",
			Help:      "Appointment events that could not be delivered to a sink.",
		}, []string{"sink"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.SlotsReturned,
		m.BarberScheduleFailures,
		m.TransitionDecisions,
		m.AppointmentMutationsTotal,
		m.ScheduleCacheLookups,
		m.EventDeliveryFailures,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP-запрос; route - шаблон пути роутера
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveSlotsReturned фиксирует количество слотов в ответе ("barber" или "any")
func (m *Metrics) ObserveSlotsReturned(mode string, count int) {
	if m == nil {
		return
	}
	m.SlotsReturned.WithLabelValues(mode).Observe(float64(count))
}

// IncBarberScheduleFailure учитывает барбера, пропущенного агрегатором
func (m *Metrics) IncBarberScheduleFailure(reason string) {
	if m == nil {
		return
	}
	m.BarberScheduleFailures.WithLabelValues(reason).Inc()
}

// IncTransitionDecision учитывает решение валидатора переходов
func (m *Metrics) IncTransitionDecision(status string, allowed bool) {
	if m == nil {
		return
	}
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	m.TransitionDecisions.WithLabelValues(status, decision).Inc()
}

// IncAppointmentMutation учитывает успешную мутацию записи
func (m *Metrics) IncAppointmentMutation(event string) {
	if m == nil {
		return
	}
	m.AppointmentMutationsTotal.WithLabelValues(event).Inc()
}

// IncScheduleCacheLookup учитывает попадание/промах кэша расписаний
func (m *Metrics) IncScheduleCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ScheduleCacheLookups.WithLabelValues(result).Inc()
}

// IncEventDeliveryFailure учитывает неотправленное событие
func (m *Metrics) IncEventDeliveryFailure(sink string) {
	if m == nil {
		return
	}
	m.EventDeliveryFailures.WithLabelValues(sink).Inc()
}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}
