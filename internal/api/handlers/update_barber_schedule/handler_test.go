package update_barber_schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers"
	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers/models"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
)

type fakeService struct {
	req *models.UpdateScheduleRequest
	err error
}

func (f *fakeService) UpdateSchedule(_ context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{BarberID: req.BarberID, Weekly: req.Weekly, Exceptions: req.Exceptions}, nil
}

func put(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/barbers/{barberId}/schedule", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, target, strings.NewReader(body)))
	return rec
}

const validBody = `{
	"weekly": [{"dayOfWeek": 1, "start": "09:00", "end": "18:00", "breaks": [{"start": "13:00", "end": "14:00"}]}],
	"exceptions": [{"date": "2025-12-24", "closed": true}]
}`

func TestHandle_Updated(t *testing.T) {
	svc := &fakeService{}

	rec := put(svc, "/barbers/2/schedule", validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.req)
	assert.Equal(t, int64(2), svc.req.BarberID, "barber id comes from the path")
	require.Len(t, svc.req.Weekly, 1)
	assert.Equal(t, "13:00", svc.req.Weekly[0].Breaks[0].Start)
	assert.True(t, svc.req.Exceptions[0].Closed)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		want   int
	}{
		{"bad id", "/barbers/x/schedule", validBody, nil, http.StatusBadRequest},
		{"bad body", "/barbers/2/schedule", `[]`, nil, http.StatusBadRequest},
		{"invalid schedule", "/barbers/2/schedule", validBody, fmt.Errorf("%w: break outside window", barbers.ErrInvalidSchedule), http.StatusBadRequest},
		{"not found", "/barbers/2/schedule", validBody, barbers.ErrBarberNotFound, http.StatusNotFound},
		{"internal", "/barbers/2/schedule", validBody, barbers.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := put(&fakeService{err: tt.err}, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_InvalidScheduleMessage(t *testing.T) {
	rec := put(&fakeService{err: fmt.Errorf("%w: break outside window", barbers.ErrInvalidSchedule)}, "/barbers/2/schedule", validBody)
	assert.Contains(t, rec.Body.String(), "break outside window")
}
