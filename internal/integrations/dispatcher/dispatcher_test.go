package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

type recordingSink struct {
	name   string
	err    error
	events []domain.AppointmentEvent
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(ctx context.Context, event domain.AppointmentEvent) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.events = append(s.events, event)
	return s.err
}

type recordingLogger struct {
	errors int
}

func (l *recordingLogger) Error(string, ...interface{}) { l.errors++ }

type recordingMetrics struct {
	failures map[string]int
}

func (m *recordingMetrics) IncEventDeliveryFailure(sink string) {
	m.failures[sink]++
}

func TestDispatcher_Dispatch(t *testing.T) {
	ok := &recordingSink{name: "notification_service"}
	broken := &recordingSink{name: "kafka", err: errors.New("broker down")}
	log := &recordingLogger{}
	m := &recordingMetrics{failures: map[string]int{}}

	d := New(log, m, time.Second, ok, nil, broken)

	appt := &domain.Appointment{
		ID:            5,
		BarberID:      2,
		Status:        domain.StatusCancelled,
		StartDateTime: time.Date(2025, time.June, 2, 15, 0, 0, 0, time.UTC),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, domain.EventAppointmentCancelled, appt)

	require.Len(t, ok.events, 1, "cancelled request context must not stop delivery")
	event := ok.events[0]
	assert.Equal(t, domain.EventAppointmentCancelled, event.Type)
	assert.Equal(t, int64(5), event.AppointmentID)
	assert.Equal(t, domain.StatusCancelled, event.Status)
	_, err := uuid.Parse(event.ID)
	assert.NoError(t, err)

	require.Len(t, broken.events, 1)
	assert.Equal(t, event.ID, broken.events[0].ID, "all sinks receive the same event")
	assert.Equal(t, 1, log.errors)
	assert.Equal(t, 1, m.failures["kafka"])
}

func TestDispatcher_NoSinks(t *testing.T) {
	d := New(&recordingLogger{}, nil, 0)
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), domain.EventAppointmentCreated, &domain.Appointment{ID: 1})
	})
}

type deadlineSink struct {
	deadline time.Time
	ok       bool
}

func (s *deadlineSink) Name() string { return "kafka" }

func (s *deadlineSink) Send(ctx context.Context, _ domain.AppointmentEvent) error {
	s.deadline, s.ok = ctx.Deadline()
	return nil
}

func TestDispatcher_ZeroTimeoutUsesDefault(t *testing.T) {
	sink := &deadlineSink{}
	d := New(&recordingLogger{}, nil, 0, sink)

	before := time.Now()
	d.Dispatch(context.Background(), domain.EventAppointmentCreated, &domain.Appointment{ID: 1})

	require.True(t, sink.ok, "send always has a deadline")
	assert.WithinDuration(t, before.Add(DefaultTimeout), sink.deadline, time.Second)
}
