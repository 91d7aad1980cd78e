package list_bookings

import (
	"context"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListAll(ctx context.Context, principal *domain.Principal, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
