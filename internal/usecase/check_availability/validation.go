package check_availability

import (
	"fmt"
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	start := truncateToDate(req.StartDate)
	end := truncateToDate(req.EndDate)

	if end.Before(start) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidRange)
	}

	if end.Sub(start) > time.Duration(domain.MaxAvailabilityRangeDays)*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxAvailabilityRangeDays)
	}

	return nil
}

// truncateToDate обнуляет компонент времени, оставляя только дату в UTC
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
