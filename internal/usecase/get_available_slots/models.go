package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// Режимы запроса для метрик
const (
	modeBarber = "barber"
	modeAny    = "any"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	BarberID  *int64    // ID барбера; nil - любой барбер
	Date      time.Time // Календарная дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time         // Дата, на которую запрашивались слоты
	ServiceID       int64             // ID услуги
	BarberID        *int64            // ID барбера; nil в режиме "любой барбер"
	DurationMinutes int               // Длительность услуги
	Slots           []domain.TimeSlot // Доступные слоты по возрастанию времени
}
