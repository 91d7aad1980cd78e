package identityservice

import "errors"

var (
	// ErrUnauthenticated возвращается при отсутствующем, просроченном
	// или невалидном токене
	ErrUnauthenticated = errors.New("invalid or expired token")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")

	// ErrUnavailable возвращается при недоступности identity-сервиса.
	// Пробрасывается вызывающему: операция без известного principal невозможна.
	ErrUnavailable = errors.New("identityservice unavailable")
)
