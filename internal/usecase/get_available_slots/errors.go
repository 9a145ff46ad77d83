package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInactiveService возвращается, когда услуга отключена
	ErrInactiveService = errors.New("get_available_slots: service is inactive")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("get_available_slots: barber not found")

	// ErrBarberInactive возвращается, когда барбер отключен
	ErrBarberInactive = errors.New("get_available_slots: barber is inactive")

	// ErrBarberDoesNotOfferService возвращается, когда барбер не оказывает услугу
	ErrBarberDoesNotOfferService = errors.New("get_available_slots: barber does not offer this service")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
