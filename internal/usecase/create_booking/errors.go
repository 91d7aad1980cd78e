package create_booking

import (
	"errors"
	"fmt"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом или сегодня.
	// Бронирование на текущий день не допускается.
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrRoomNotFound возвращается, когда комната не найдена в каталоге
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomInactive возвращается, когда комната деактивирована
	ErrRoomInactive = errors.New("create_booking: room is not active")

	// ErrCatalogUnavailable возвращается при недоступности каталог-сервиса
	ErrCatalogUnavailable = errors.New("create_booking: catalog service unavailable")

	// ErrSlotAlreadyBooked возвращается, когда слот (roomId, date) уже занят
	// активным бронированием
	ErrSlotAlreadyBooked = errors.New("create_booking: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotConflictError детализирует ErrSlotAlreadyBooked: содержит id и статус
// конфликтующего бронирования, чтобы вызывающий мог выбрать другую дату.
type SlotConflictError struct {
	BookingID int64
	Status    domain.BookingStatus
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: conflicting booking id=%d status=%s", ErrSlotAlreadyBooked, e.BookingID, e.Status)
}

// Unwrap позволяет errors.Is(err, ErrSlotAlreadyBooked)
func (e *SlotConflictError) Unwrap() error {
	return ErrSlotAlreadyBooked
}
