package create_booking

import (
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/pricing"
)

// Request модель запроса на создание бронирования.
// Principal уже проверен identity-сервисом в middleware.
type Request struct {
	Principal *domain.Principal // Аутентифицированный пользователь
	RoomID    int64             // ID комнаты
	Date      time.Time         // Дата бронирования (без времени, UTC)
}

// Response модель ответа с созданным бронированием и расшифровкой цены
type Response struct {
	Booking   *domain.Booking
	Breakdown pricing.Breakdown
}
