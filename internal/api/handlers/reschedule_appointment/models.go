package reschedule_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-BarbershopService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date      string `json:"date"`      // "2025-06-03"
	StartTime string `json:"startTime"` // "15:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID            int64  `json:"id"`
	BarberID      int64  `json:"barberId"`
	ServiceID     int64  `json:"serviceId"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

func (r *RescheduleRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}
	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		StartTime:     startTime,
	}, nil
}

func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:            resp.ID,
		BarberID:      resp.BarberID,
		ServiceID:     resp.ServiceID,
		Status:        resp.Status,
		Date:          resp.StartDateTime.Format(domain.DateFormat),
		StartTime:     types.NewTimeString(resp.StartDateTime).String(),
		EndTime:       types.NewTimeString(resp.EndDateTime).String(),
		StartDateTime: resp.StartDateTime.Format(time.RFC3339),
		EndDateTime:   resp.EndDateTime.Format(time.RFC3339),
	}
}
