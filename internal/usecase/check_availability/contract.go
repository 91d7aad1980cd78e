package check_availability

import (
	"context"
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRoomInRange(ctx context.Context, roomID int64, startDate, endDate time.Time) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента каталог-сервиса
type CatalogClient interface {
	GetRoom(ctx context.Context, roomID int64) (*catalogservice.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
