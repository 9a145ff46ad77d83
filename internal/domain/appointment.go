package domain

import "time"

// AppointmentStatus статус записи к барберу
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "agendado"
	StatusRescheduled AppointmentStatus = "reagendado"
	StatusCompleted   AppointmentStatus = "completado"
	StatusCancelled   AppointmentStatus = "cancelado"
)

// IsValid проверяет, что статус входит в известный набор
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive возвращает true для статусов, которые ставят запись в расписание барбера
func (s AppointmentStatus) IsActive() bool {
	return s == StatusScheduled || s == StatusRescheduled
}

// Appointment запись клиента к барберу
type Appointment struct {
	ID        int64
	ClientID  int64
	BarberID  int64
	ServiceID int64

	StartDateTime time.Time // абсолютный момент (UTC в БД)
	EndDateTime   time.Time
	Status        AppointmentStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает время барбера
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// BookedInterval упрощенное представление существующей записи для проверки пересечений
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет строгое пересечение с [start, end).
// Интервалы, которые только касаются границей, не пересекаются
func (b BookedInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// BusyStatuses статусы записей, которые блокируют время барбера
func BusyStatuses(countCompleted bool) []AppointmentStatus {
	statuses := []AppointmentStatus{StatusScheduled, StatusRescheduled}
	if countCompleted {
		statuses = append(statuses, StatusCompleted)
	}
	return statuses
}
