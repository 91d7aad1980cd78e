package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("check_availability: invalid date range")

	// ErrRoomNotFound возвращается, когда комната не найдена в каталоге
	ErrRoomNotFound = errors.New("check_availability: room not found")

	// ErrCatalogUnavailable возвращается при недоступности каталог-сервиса
	ErrCatalogUnavailable = errors.New("check_availability: catalog service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
