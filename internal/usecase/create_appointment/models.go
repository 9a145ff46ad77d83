package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64            // ID клиента (X-User-ID)
	ServiceID int64            // ID услуги
	BarberID  *int64           // ID барбера; nil - любой свободный барбер
	Date      time.Time        // Календарная дата записи
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64     // ID созданной записи
	ClientID        int64     // ID клиента
	BarberID        int64     // ID барбера (выбранного системой в режиме "любой")
	ServiceID       int64     // ID услуги
	StartDateTime   time.Time // Начало записи в зоне бизнеса
	EndDateTime     time.Time // Конец записи в зоне бизнеса
	Status          string    // Статус записи
	DurationMinutes int       // Длительность услуги

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
