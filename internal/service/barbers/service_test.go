package barbers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers/models"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
)

type fakeBarbers map[int64]*domain.Barber

func (f fakeBarbers) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	if b, ok := f[id]; ok {
		return b, nil
	}
	return nil, barberRepo.ErrBarberNotFound
}

type fakeStore struct {
	schedules map[int64]*domain.BarberSchedule
	updated   []*domain.BarberSchedule
	err       error
}

func (f *fakeStore) GetSchedule(_ context.Context, barberID int64) (*domain.BarberSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.schedules[barberID]; ok {
		return s, nil
	}
	return nil, barberRepo.ErrBarberNotFound
}

func (f *fakeStore) UpdateSchedule(_ context.Context, schedule *domain.BarberSchedule) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, schedule)
	return nil
}

func strPtr(s string) *string { return &s }

func newService() (*Service, *fakeStore) {
	store := &fakeStore{schedules: map[int64]*domain.BarberSchedule{
		1: {
			BarberID: 1,
			Weekly: []domain.WeeklyScheduleEntry{
				{DayOfWeek: 1, Start: "09:00", End: "17:30", Breaks: []domain.Break{{Start: "12:30", End: "13:30"}}},
			},
		},
	}}
	return NewService(fakeBarbers{1: {ID: 1, IsActive: true}}, store, logger.NewNop()), store
}

func TestGetSchedule(t *testing.T) {
	s, _ := newService()

	resp, err := s.GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Weekly, 1)
	assert.Equal(t, "12:30", resp.Weekly[0].Breaks[0].Start)
	assert.NotNil(t, resp.Exceptions)

	_, err = s.GetSchedule(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBarberNotFound)

	_, err = s.GetSchedule(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSchedule_StoreError(t *testing.T) {
	s, store := newService()
	store.err = errors.New("db down")

	_, err := s.GetSchedule(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateSchedule(t *testing.T) {
	s, store := newService()

	resp, err := s.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		BarberID: 1,
		Weekly: []models.WeeklyEntry{
			{DayOfWeek: 2, Start: "10:00", End: "18:00", Breaks: []models.Break{{Start: "14:00", End: "14:30"}}},
		},
		Exceptions: []models.Exception{
			{Date: "2025-12-24", Start: strPtr("09:00"), End: strPtr("13:00")},
			{Date: "2025-12-25", Closed: true},
		},
	})
	require.NoError(t, err)

	require.Len(t, store.updated, 1)
	saved := store.updated[0]
	assert.Equal(t, int64(1), saved.BarberID)
	assert.Equal(t, 2, saved.Weekly[0].DayOfWeek)
	assert.True(t, saved.Exceptions[0].HasHours())
	assert.True(t, saved.Exceptions[1].Closed)
	assert.Equal(t, "13:00", *resp.Exceptions[0].End)
}

func TestUpdateSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateScheduleRequest
	}{
		{"day out of range", &models.UpdateScheduleRequest{BarberID: 1, Weekly: []models.WeeklyEntry{{DayOfWeek: 7, Start: "09:00", End: "10:00"}}}},
		{"start after end", &models.UpdateScheduleRequest{BarberID: 1, Weekly: []models.WeeklyEntry{{DayOfWeek: 1, Start: "18:00", End: "09:00"}}}},
		{"break outside window", &models.UpdateScheduleRequest{BarberID: 1, Weekly: []models.WeeklyEntry{
			{DayOfWeek: 1, Start: "09:00", End: "12:00", Breaks: []models.Break{{Start: "11:30", End: "12:30"}}},
		}}},
		{"only exception start", &models.UpdateScheduleRequest{BarberID: 1, Exceptions: []models.Exception{{Date: "2025-12-24", Start: strPtr("09:00")}}}},
		{"bad exception date", &models.UpdateScheduleRequest{BarberID: 1, Exceptions: []models.Exception{{Date: "24/12/2025", Closed: true}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newService()
			_, err := s.UpdateSchedule(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
			assert.Empty(t, store.updated)
		})
	}
}

func TestUpdateSchedule_BarberNotFound(t *testing.T) {
	s, store := newService()

	_, err := s.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{BarberID: 42})
	assert.ErrorIs(t, err, ErrBarberNotFound)
	assert.Empty(t, store.updated)
}
