package update_appointment_status

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID int64
	Status        domain.AppointmentStatus
	Reason        *string // причина отмены, учитывается только для cancelado
}

// Response модель ответа с обновленной записью
type Response struct {
	ID                 int64
	BarberID           int64
	Status             string
	StartDateTime      time.Time
	EndDateTime        time.Time
	CancellationReason *string
	CancelledAt        *time.Time
}
