package reschedule_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
	"github.com/m04kA/SMC-BarbershopService/pkg/txmanager"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

type rescheduled struct {
	start, end time.Time
}

type fakeAppointments struct {
	appointments map[int64]*domain.Appointment
	rescheduled  map[int64]rescheduled
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointments) Reschedule(_ context.Context, id int64, start, end time.Time) error {
	f.rescheduled[id] = rescheduled{start, end}
	return nil
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	return f[id], nil
}

type fakeCalculator struct {
	free      bool
	excludeID *int64
	start     types.TimeString
}

func (f *fakeCalculator) Settings() scheduling.Settings { return scheduling.DefaultSettings() }

func (f *fakeCalculator) IsFree(
	_ context.Context, _ int64, _ time.Time, start types.TimeString, _ int, _ time.Time, excludeID *int64,
) (bool, error) {
	f.excludeID = excludeID
	f.start = start
	return f.free, nil
}

type fakeTx struct{ err error }

func (f fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fakeNotifier struct{ events []domain.EventType }

func (f *fakeNotifier) Dispatch(_ context.Context, eventType domain.EventType, _ *domain.Appointment) {
	f.events = append(f.events, eventType)
}

type fakeMetrics struct {
	denied    int
	allowed   int
	mutations []string
}

func (m *fakeMetrics) IncTransitionDecision(_ string, allowed bool) {
	if allowed {
		m.allowed++
	} else {
		m.denied++
	}
}

func (m *fakeMetrics) IncAppointmentMutation(event string) { m.mutations = append(m.mutations, event) }

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

var (
	bogota = scheduling.DefaultSettings().Location
	// вторник 3 июня 2025, 10:00 по Боготе
	oldStart = time.Date(2025, time.June, 3, 10, 0, 0, 0, bogota)
	tuesday  = time.Date(2025, time.June, 3, 0, 0, 0, 0, bogota)
)

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointments
	calc         *fakeCalculator
	notifier     *fakeNotifier
	metrics      *fakeMetrics
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		appointments: &fakeAppointments{
			appointments: map[int64]*domain.Appointment{
				1: {ID: 1, BarberID: 2, ServiceID: 10, StartDateTime: oldStart, EndDateTime: oldStart.Add(30 * time.Minute), Status: domain.StatusScheduled},
				2: {ID: 2, BarberID: 2, ServiceID: 10, StartDateTime: oldStart, EndDateTime: oldStart.Add(30 * time.Minute), Status: domain.StatusCancelled},
			},
			rescheduled: map[int64]rescheduled{},
		},
		calc:     &fakeCalculator{free: true},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
	}
	services := fakeServices{10: {ID: 10, DurationMinutes: 45, IsActive: true}}
	f.uc = NewUseCase(f.appointments, services, f.calc, f.notifier, f.metrics, fakeTx{}, 0, logger.NewNop())
	f.uc.timeProvider = fixedTime(now)
	return f
}

func TestExecute_Reschedule(t *testing.T) {
	f := newFixture(oldStart.Add(-5 * time.Hour))

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Date: tuesday, StartTime: "15:00"})
	require.NoError(t, err)

	wantStart := time.Date(2025, time.June, 3, 15, 0, 0, 0, bogota)
	assert.True(t, resp.StartDateTime.Equal(wantStart))
	assert.True(t, resp.EndDateTime.Equal(wantStart.Add(45*time.Minute)), "duration comes from the service")
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)

	require.NotNil(t, f.calc.excludeID)
	assert.Equal(t, int64(1), *f.calc.excludeID, "the appointment does not conflict with itself")
	assert.Equal(t, types.TimeString("15:00"), f.calc.start)
	assert.True(t, f.appointments.rescheduled[1].start.Equal(wantStart))

	assert.Equal(t, 1, f.metrics.allowed)
	assert.Equal(t, []string{"rescheduled"}, f.metrics.mutations)
	assert.Equal(t, []domain.EventType{domain.EventAppointmentRescheduled}, f.notifier.events)
}

func TestExecute_CurrentStartTooClose(t *testing.T) {
	f := newFixture(oldStart.Add(-30 * time.Minute))

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Date: tuesday.AddDate(0, 0, 1), StartTime: "15:00"})
	var denied *TransitionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "Solo se puede reagendar una cita con más de 60 minutos de anticipación", denied.Reason)
	assert.Equal(t, 1, f.metrics.denied)
	assert.Empty(t, f.appointments.rescheduled)
}

func TestExecute_NewStartTooClose(t *testing.T) {
	// сейчас 07:00, старое начало 10:00, новое 07:45
	f := newFixture(oldStart.Add(-3 * time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Date: tuesday, StartTime: "07:45"})
	assert.ErrorIs(t, err, ErrTransitionDenied)
	assert.Empty(t, f.appointments.rescheduled)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(oldStart.Add(-5 * time.Hour))
	f.calc.free = false

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Date: tuesday, StartTime: "15:00"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.events)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"invalid id", &Request{AppointmentID: 0, Date: tuesday, StartTime: "15:00"}, ErrInvalidInput},
		{"invalid time", &Request{AppointmentID: 1, Date: tuesday, StartTime: "3pm"}, ErrInvalidInput},
		{"past date", &Request{AppointmentID: 1, Date: tuesday.AddDate(0, 0, -2), StartTime: "15:00"}, ErrInvalidDate},
		{"not found", &Request{AppointmentID: 9, Date: tuesday, StartTime: "15:00"}, ErrAppointmentNotFound},
		{"cancelled appointment", &Request{AppointmentID: 2, Date: tuesday, StartTime: "15:00"}, ErrAppointmentNotActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(oldStart.Add(-5 * time.Hour))
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConcurrentRescheduleIsConflict(t *testing.T) {
	f := newFixture(oldStart.Add(-5 * time.Hour))
	f.uc.txManager = fakeTx{err: fmt.Errorf("%w: commit", txmanager.ErrSerialization)}

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Date: tuesday, StartTime: "15:00"})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.notifier.events)
	assert.Empty(t, f.metrics.mutations)
}
