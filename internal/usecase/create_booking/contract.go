package create_booking

import (
	"context"
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/catalogservice"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/notifyservice"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/weatherservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByRoomAndDate(ctx context.Context, roomID int64, date time.Time) (*domain.Booking, error)
}

// CatalogClient интерфейс клиента каталог-сервиса
type CatalogClient interface {
	ValidateRoom(ctx context.Context, roomID int64) (*catalogservice.Room, error)
}

// WeatherClient интерфейс клиента погодного сервиса.
// Реализация не возвращает ошибку: при недоступности оракула отдается
// fallback-прогноз.
type WeatherClient interface {
	GetForecast(ctx context.Context, locationID int64, date time.Time) *weatherservice.Forecast
}

// PriceCalculator интерфейс калькулятора погодной надбавки
type PriceCalculator interface {
	Compute(basePrice, temperature float64) (deviation, adjustedPrice float64)
	ComfortableTemperature() float64
	AdjustmentFactor() float64
}

// NotificationDispatcher интерфейс фоновой отправки уведомлений
type NotificationDispatcher interface {
	Dispatch(event *notifyservice.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учета созданных бронирований (опционально)
type Metrics interface {
	IncBookingCreated()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
