package barbers

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barbers: barber not found")

	// ErrInvalidSchedule возвращается, когда документ расписания нарушает инварианты
	ErrInvalidSchedule = errors.New("barbers: invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("barbers: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("barbers: internal error")
)
