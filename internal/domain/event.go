package domain

import "time"

// EventType тип события по записи
type EventType string

const (
	EventAppointmentCreated     EventType = "appointment.created"
	EventAppointmentCancelled   EventType = "appointment.cancelled"
	EventAppointmentRescheduled EventType = "appointment.rescheduled"
	EventAppointmentCompleted   EventType = "appointment.completed"
	EventAppointmentStatus      EventType = "appointment.status_changed"
)

// EventForStatus тип события для перехода в статус
func EventForStatus(status AppointmentStatus) EventType {
	switch status {
	case StatusCancelled:
		return EventAppointmentCancelled
	case StatusCompleted:
		return EventAppointmentCompleted
	case StatusRescheduled:
		return EventAppointmentRescheduled
	default:
		return EventAppointmentStatus
	}
}

// AppointmentEvent уведомление об изменении записи для внешних систем
type AppointmentEvent struct {
	ID            string            `json:"eventId"`
	Type          EventType         `json:"event"`
	AppointmentID int64             `json:"appointmentId"`
	ClientID      int64             `json:"clientId"`
	BarberID      int64             `json:"barberId"`
	ServiceID     int64             `json:"serviceId"`
	Status        AppointmentStatus `json:"status"`
	StartTime     time.Time         `json:"startTime"`
	EndTime       time.Time         `json:"endTime"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// NewAppointmentEvent собирает событие по текущему состоянию записи
func NewAppointmentEvent(id string, eventType EventType, a *Appointment, now time.Time) AppointmentEvent {
	return AppointmentEvent{
		ID:            id,
		Type:          eventType,
		AppointmentID: a.ID,
		ClientID:      a.ClientID,
		BarberID:      a.BarberID,
		ServiceID:     a.ServiceID,
		Status:        a.Status,
		StartTime:     a.StartDateTime,
		EndTime:       a.EndDateTime,
		OccurredAt:    now,
	}
}
