package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// Decision результат проверки смены статуса. Отказ - это значение, а не ошибка
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ValidateTransition проверяет временные ограничения смены статуса записи.
//
//   - completado: запрещено, пока запись не началась;
//   - cancelado, reagendado: запрещено, если до начала осталось LeadTime или меньше;
//   - остальные переходы разрешены.
//
// Текущий статус не участвует в проверке.
func ValidateTransition(
	current domain.AppointmentStatus,
	next domain.AppointmentStatus,
	start time.Time,
	now time.Time,
	settings Settings,
) Decision {
	leadTime := settings.LeadTime
	if leadTime <= 0 {
		leadTime = domain.DefaultLeadTimeMinutes * time.Minute
	}

	switch next {
	case domain.StatusCompleted:
		if now.Before(start) {
			return deny("No se puede completar una cita que aún no ha comenzado")
		}
	case domain.StatusCancelled:
		if start.Sub(now) <= leadTime {
			return deny(fmt.Sprintf("Solo se puede cancelar una cita con más de %d minutos de anticipación",
				int(leadTime/time.Minute)))
		}
	case domain.StatusRescheduled:
		if start.Sub(now) <= leadTime {
			return deny(fmt.Sprintf("Solo se puede reagendar una cita con más de %d minutos de anticipación",
				int(leadTime/time.Minute)))
		}
	}

	return allow()
}
