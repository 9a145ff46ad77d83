package notificationservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrRejected возвращается, когда сервис отклонил событие (4xx), повтор не поможет
	ErrRejected = errors.New("notificationservice client: event rejected")
)
