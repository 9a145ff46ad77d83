package models

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	BarberID  int64  `json:"barberId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2025-06-02"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
	Status    string `json:"status"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName,omitempty"`
	ServicePrice float64 `json:"servicePrice,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDomainAppointment конвертирует domain модель в DTO; времена переводятся в зону loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	start := a.StartDateTime.In(loc)
	end := a.EndDateTime.In(loc)

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		BarberID:           a.BarberID,
		ServiceID:          a.ServiceID,
		Date:               start.Format(domain.DateFormat),
		StartTime:          types.NewTimeString(start).String(),
		EndTime:            types.NewTimeString(end).String(),
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		StartDateTime:      start,
		EndDateTime:        end,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.In(loc).Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}
