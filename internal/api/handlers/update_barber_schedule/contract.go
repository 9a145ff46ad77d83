package update_barber_schedule

import (
	"context"

	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers/models"
)

type BarberService interface {
	UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
