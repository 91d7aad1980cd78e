package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	// (не владелец и не администратор)
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled возвращается при повторной попытке отмены
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrCannotCancelCompleted возвращается при попытке отменить
	// завершенное бронирование
	ErrCannotCancelCompleted = errors.New("completed booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
