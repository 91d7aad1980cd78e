package cancel_booking

import (
	"context"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, principal *domain.Principal, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
