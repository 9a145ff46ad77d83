package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-BarbershopService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
	"github.com/m04kA/SMC-BarbershopService/pkg/ptr"
)

type fakeUseCase struct {
	req  *createAppointment.Request
	resp *createAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.req = req
	return f.resp, f.err
}

func post(uc *fakeUseCase, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	start := time.Date(2025, time.June, 2, 10, 0, 0, 0, bogota)
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:              100,
		ClientID:        7,
		BarberID:        2,
		ServiceID:       10,
		StartDateTime:   start,
		EndDateTime:     start.Add(45 * time.Minute),
		Status:          "agendado",
		DurationMinutes: 45,
		ServiceName:     "Corte",
	}}

	rec := post(uc, `{"serviceId":10,"barberId":"any","date":"2025-06-02","startTime":"10:00"}`, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, int64(7), uc.req.ClientID)
	assert.Nil(t, uc.req.BarberID)

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-02", body.Date)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "10:45", body.EndTime)
	assert.Equal(t, "2025-06-02T10:00:00-05:00", body.StartDateTime)
	assert.Equal(t, int64(2), body.BarberID)
}

func TestHandle_BarberIDForms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int64
	}{
		{"number", `3`, ptr.Ptr(int64(3))},
		{"numeric string", `"3"`, ptr.Ptr(int64(3))},
		{"any", `"any"`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{resp: &createAppointment.Response{}}
			rec := post(uc, `{"serviceId":10,"barberId":`+tt.raw+`,"date":"2025-06-02","startTime":"10:00"}`, 7)
			require.Equal(t, http.StatusCreated, rec.Code)
			assert.Equal(t, tt.want, uc.req.BarberID)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"serviceId":`},
		{"bad barber", `{"serviceId":10,"barberId":"someone","date":"2025-06-02","startTime":"10:00"}`},
		{"bad date", `{"serviceId":10,"date":"June 2","startTime":"10:00"}`},
		{"bad time", `{"serviceId":10,"date":"2025-06-02","startTime":"25:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := post(uc, tt.body, 7)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.req)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	rec := post(&fakeUseCase{}, `{}`, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{createAppointment.ErrServiceNotFound, http.StatusNotFound},
		{createAppointment.ErrInactiveService, http.StatusUnprocessableEntity},
		{createAppointment.ErrBarberNotFound, http.StatusNotFound},
		{createAppointment.ErrBarberInactive, http.StatusUnprocessableEntity},
		{createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, `{"serviceId":10,"barberId":1,"date":"2025-06-02","startTime":"10:00"}`, 7)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
