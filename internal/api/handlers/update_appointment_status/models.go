package update_appointment_status

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	updateStatus "github.com/m04kA/SMC-BarbershopService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"` // agendado, confirmado, cancelado, completado, reagendado
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	ID                 int64   `json:"id"`
	BarberID           int64   `json:"barberId"`
	Status             string  `json:"status"`
	StartDateTime      string  `json:"startDateTime"`
	EndDateTime        string  `json:"endDateTime"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
}

func (r *UpdateStatusRequest) ToUseCaseRequest(appointmentID int64) *updateStatus.Request {
	return &updateStatus.Request{
		AppointmentID: appointmentID,
		Status:        domain.AppointmentStatus(r.Status),
		Reason:        r.CancellationReason,
	}
}

func FromUseCaseResponse(resp *updateStatus.Response) *StatusResponse {
	out := &StatusResponse{
		ID:                 resp.ID,
		BarberID:           resp.BarberID,
		Status:             resp.Status,
		StartDateTime:      resp.StartDateTime.Format(time.RFC3339),
		EndDateTime:        resp.EndDateTime.Format(time.RFC3339),
		CancellationReason: resp.CancellationReason,
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.UTC().Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}
	return out
}
