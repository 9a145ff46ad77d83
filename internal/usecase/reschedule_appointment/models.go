package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	Date          time.Time        // Новая календарная дата
	StartTime     types.TimeString // Новое время начала
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID            int64
	BarberID      int64
	ServiceID     int64
	Status        string
	StartDateTime time.Time
	EndDateTime   time.Time
}
