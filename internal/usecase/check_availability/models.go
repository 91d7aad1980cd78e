package check_availability

import (
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
)

// Request модель запроса доступности комнаты
type Request struct {
	RoomID    int64
	StartDate time.Time // Начало диапазона (включительно)
	EndDate   time.Time // Конец диапазона (включительно)
}

// Response занятые даты комнаты в запрошенном диапазоне
type Response struct {
	Availability *domain.RoomAvailability
}
