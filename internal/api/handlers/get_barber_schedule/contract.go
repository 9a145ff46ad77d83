package get_barber_schedule

import (
	"context"

	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers/models"
)

type BarberService interface {
	GetSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
