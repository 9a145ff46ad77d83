package create_appointment

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarbershopService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

var (
	errInvalidBarberID = errors.New("invalid barber id")
	errInvalidDate     = errors.New("invalid date")
	errInvalidTime     = errors.New("invalid start time")
)

// BarberRef ID барбера: число, строка с числом или "any".
// Пустое значение тоже означает любого барбера
type BarberRef struct {
	ID *int64
}

func (b *BarberRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return errInvalidBarberID
		}
		if raw == "" || raw == "any" {
			return nil
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return errInvalidBarberID
	}
	b.ID = &id
	return nil
}

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID int64     `json:"serviceId"`
	BarberID  BarberRef `json:"barberId"`
	Date      string    `json:"date"`      // "2025-06-02"
	StartTime string    `json:"startTime"` // "10:00"
	Notes     *string   `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	BarberID        int64   `json:"barberId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	StartDateTime   string  `json:"startDateTime"`
	EndDateTime     string  `json:"endDateTime"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createAppointment.Request{
		ClientID:  clientID,
		ServiceID: r.ServiceID,
		BarberID:  r.BarberID.ID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		Date:            resp.StartDateTime.Format(domain.DateFormat),
		StartTime:       types.NewTimeString(resp.StartDateTime).String(),
		EndTime:         types.NewTimeString(resp.EndDateTime).String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		StartDateTime:   resp.StartDateTime.Format(time.RFC3339),
		EndDateTime:     resp.EndDateTime.Format(time.RFC3339),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
