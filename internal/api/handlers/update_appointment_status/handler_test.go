package update_appointment_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	updateStatus "github.com/m04kA/SMC-BarbershopService/internal/usecase/update_appointment_status"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
	"github.com/m04kA/SMC-BarbershopService/pkg/ptr"
)

type fakeUseCase struct {
	req  *updateStatus.Request
	resp *updateStatus.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	f.req = req
	return f.resp, f.err
}

func patch(uc *fakeUseCase, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/status", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	cancelledAt := time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &updateStatus.Response{
		ID:                 1,
		Status:             "cancelado",
		CancellationReason: ptr.Ptr("viaje"),
		CancelledAt:        &cancelledAt,
	}}

	rec := patch(uc, "/appointments/1/status", `{"status":"cancelado","cancellationReason":"viaje"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(1), uc.req.AppointmentID)
	assert.Equal(t, domain.StatusCancelled, uc.req.Status)
	assert.Equal(t, "viaje", *uc.req.Reason)

	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-02T13:00:00Z", *body.CancelledAt)
}

func TestHandle_TransitionDenied(t *testing.T) {
	reason := "Solo se puede cancelar una cita con más de 60 minutos de anticipación"
	uc := &fakeUseCase{err: &updateStatus.TransitionDeniedError{Reason: reason}}

	rec := patch(uc, "/appointments/1/status", `{"status":"cancelado"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, reason, body.Error)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		want   int
	}{
		{"bad id", "/appointments/x/status", `{"status":"cancelado"}`, nil, http.StatusBadRequest},
		{"bad body", "/appointments/1/status", `status=cancelado`, nil, http.StatusBadRequest},
		{"invalid status", "/appointments/1/status", `{"status":"pendiente"}`, updateStatus.ErrInvalidInput, http.StatusBadRequest},
		{"not found", "/appointments/1/status", `{"status":"cancelado"}`, updateStatus.ErrAppointmentNotFound, http.StatusNotFound},
		{"slot taken", "/appointments/1/status", `{"status":"agendado"}`, updateStatus.ErrSlotNotAvailable, http.StatusConflict},
		{"internal", "/appointments/1/status", `{"status":"cancelado"}`, updateStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeUseCase{err: tt.err}, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
