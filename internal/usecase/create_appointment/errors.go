package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInactiveService возвращается, когда услуга отключена
	ErrInactiveService = errors.New("create_appointment: service is inactive")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrBarberInactive возвращается, когда барбер отключен
	ErrBarberInactive = errors.New("create_appointment: barber is inactive")

	// ErrBarberDoesNotOfferService возвращается, когда барбер не оказывает услугу
	ErrBarberDoesNotOfferService = errors.New("create_appointment: barber does not offer this service")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят, в перерыве, вне окна или уже прошел
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
