package notificationservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

func newTestClient(url string) *Client {
	c := NewClient(url, time.Second, nopLogger{})
	c.retryBase = time.Millisecond
	return c
}

func testEvent() domain.AppointmentEvent {
	return domain.AppointmentEvent{
		ID:            "evt-1",
		Type:          domain.EventAppointmentCreated,
		AppointmentID: 10,
		BarberID:      2,
		Status:        domain.StatusScheduled,
		StartTime:     time.Date(2025, time.June, 2, 15, 0, 0, 0, time.UTC),
	}
}

func TestClient_Send(t *testing.T) {
	var got domain.AppointmentEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/appointments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).Send(context.Background(), testEvent()))
	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, domain.EventAppointmentCreated, got.Type)
	assert.Equal(t, int64(10), got.AppointmentID)
	assert.True(t, testEvent().StartTime.Equal(got.StartTime))
}

func TestClient_Send_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).Send(context.Background(), testEvent()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Send_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send(context.Background(), testEvent())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, int32(defaultMaxRetries+1), calls.Load())
}

func TestClient_Send_RejectedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send(context.Background(), testEvent())
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), calls.Load())
}
