package domain

import "github.com/m04kA/SMC-BarbershopService/pkg/types"

// TimeSlot слот, доступный для записи.
// Недоступные слоты наружу не отдаются, поэтому Available всегда true
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
	BarberID  *int64 // заполняется только в режиме "любой барбер"
}
