package update_appointment_status

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrTransitionDenied возвращается, когда смена статуса запрещена временными ограничениями
	ErrTransitionDenied = errors.New("update_appointment_status: transition denied")

	// ErrSlotNotAvailable возвращается, когда время возвращаемой в расписание записи уже занято
	ErrSlotNotAvailable = errors.New("update_appointment_status: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)

// TransitionDeniedError отказ в смене статуса с причиной для клиента
type TransitionDeniedError struct {
	Reason string
}

func (e *TransitionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransitionDenied, e.Reason)
}

func (e *TransitionDeniedError) Unwrap() error {
	return ErrTransitionDenied
}
