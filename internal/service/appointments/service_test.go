package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
)

type fakeAppointments struct {
	appointments map[int64]*domain.Appointment
	err          error
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.appointments[id]; ok {
		return a, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, errors.New("service not found")
}

func TestGetByID(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	cancelledAt := time.Date(2025, time.June, 1, 20, 0, 0, 0, time.UTC)
	repo := &fakeAppointments{appointments: map[int64]*domain.Appointment{
		1: {
			ID:            1,
			ClientID:      7,
			BarberID:      2,
			ServiceID:     10,
			StartDateTime: time.Date(2025, time.June, 2, 15, 0, 0, 0, time.UTC),
			EndDateTime:   time.Date(2025, time.June, 2, 15, 30, 0, 0, time.UTC),
			Status:        domain.StatusCancelled,
			CancelledAt:   &cancelledAt,
		},
		2: {ID: 2, ServiceID: 99, Status: domain.StatusScheduled},
	}}
	s := NewService(repo, fakeServices{10: {ID: 10, Name: "Corte", Price: 25000}}, bogota, logger.NewNop())

	resp, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)
	assert.Equal(t, "cancelado", resp.Status)
	assert.Equal(t, "Corte", resp.ServiceName)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, "2025-06-01T15:00:00-05:00", *resp.CancelledAt)

	resp, err = s.GetByID(context.Background(), 2)
	require.NoError(t, err, "missing service does not fail the read")
	assert.Empty(t, resp.ServiceName)
}

func TestGetByID_Errors(t *testing.T) {
	s := NewService(&fakeAppointments{}, fakeServices{}, nil, logger.NewNop())

	_, err := s.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = s.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	s = NewService(&fakeAppointments{err: errors.New("db down")}, fakeServices{}, nil, logger.NewNop())
	_, err = s.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInternal)
}
