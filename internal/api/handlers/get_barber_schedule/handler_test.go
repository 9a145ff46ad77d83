package get_barber_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers"
	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers/models"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
)

type fakeService struct {
	resp *models.ScheduleResponse
	err  error
}

func (f *fakeService) GetSchedule(context.Context, int64) (*models.ScheduleResponse, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		target string
		svc    *fakeService
		want   int
	}{
		{"found", "/barbers/2/schedule", &fakeService{resp: &models.ScheduleResponse{BarberID: 2}}, http.StatusOK},
		{"bad id", "/barbers/two/schedule", &fakeService{}, http.StatusBadRequest},
		{"not found", "/barbers/2/schedule", &fakeService{err: barbers.ErrBarberNotFound}, http.StatusNotFound},
		{"internal", "/barbers/2/schedule", &fakeService{err: errors.New("redis down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/barbers/{barberId}/schedule", NewHandler(tt.svc, logger.NewNop()).Handle).Methods(http.MethodGet)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
