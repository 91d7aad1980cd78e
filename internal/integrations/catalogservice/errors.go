package catalogservice

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена в каталоге
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomInactive возвращается, когда комната существует, но деактивирована
	ErrRoomInactive = errors.New("room is not active")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrUnavailable возвращается при недоступности каталог-сервиса
	// (сетевые ошибки, таймауты, 5xx). В отличие от погодного клиента,
	// эта ошибка пробрасывается вызывающему: без комнаты бронирование невозможно.
	ErrUnavailable = errors.New("catalogservice unavailable")
)
