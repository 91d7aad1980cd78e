package create_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Principal == nil || req.Principal.ID <= 0 {
		return fmt.Errorf("%w: principal is required", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата строго позже "сегодня" в UTC.
// Бронирования на прошедшие даты и на текущий день отклоняются.
func validateDate(bookingDate time.Time, now time.Time) error {
	dateOnly := truncateToDate(bookingDate)
	todayOnly := truncateToDate(now.UTC())

	if !dateOnly.After(todayOnly) {
		return ErrInvalidDate
	}

	return nil
}

// truncateToDate обнуляет компонент времени, оставляя только дату в UTC
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
