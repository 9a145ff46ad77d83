package reschedule_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAppointmentNotActive возвращается при переносе отмененной или завершенной записи
	ErrAppointmentNotActive = errors.New("reschedule_appointment: appointment is not active")

	// ErrTransitionDenied возвращается, когда перенос запрещен временными ограничениями
	ErrTransitionDenied = errors.New("reschedule_appointment: transition denied")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reschedule_appointment: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда новый слот недоступен
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

// TransitionDeniedError отказ в переносе с причиной для клиента
type TransitionDeniedError struct {
	Reason string
}

func (e *TransitionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransitionDenied, e.Reason)
}

func (e *TransitionDeniedError) Unwrap() error {
	return ErrTransitionDenied
}
