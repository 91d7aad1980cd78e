package create_booking

import (
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	svcmodels "github.com/meteoroom/MeteoRoom-BookingService/internal/service/bookings/models"
	createBooking "github.com/meteoroom/MeteoRoom-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID      int64  `json:"roomId"`
	BookingDate string `json:"bookingDate"` // "2026-09-15"
}

// PriceBreakdownResponse расшифровка расчета цены для прозрачности
type PriceBreakdownResponse struct {
	BasePrice              float64 `json:"basePrice"`
	Temperature            float64 `json:"temperature"`
	ComfortableTemperature float64 `json:"comfortableTemperature"`
	Deviation              float64 `json:"deviation"`
	AdjustmentFactor       float64 `json:"adjustmentFactor"`
	AdjustedPrice          float64 `json:"adjustedPrice"`
	WeatherFallback        bool    `json:"weatherFallback"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking        svcmodels.BookingResponse `json:"booking"`
	PriceBreakdown PriceBreakdownResponse    `json:"priceBreakdown"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal *domain.Principal) (*createBooking.Request, error) {
	bookingDate, err := time.ParseInLocation(domain.DateFormat, r.BookingDate, time.UTC)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Principal: principal,
		RoomID:    r.RoomID,
		Date:      bookingDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: *svcmodels.FromDomainBooking(resp.Booking),
		PriceBreakdown: PriceBreakdownResponse{
			BasePrice:              resp.Breakdown.BasePrice,
			Temperature:            resp.Breakdown.Temperature,
			ComfortableTemperature: resp.Breakdown.ComfortableTemperature,
			Deviation:              resp.Breakdown.Deviation,
			AdjustmentFactor:       resp.Breakdown.AdjustmentFactor,
			AdjustedPrice:          resp.Breakdown.AdjustedPrice,
			WeatherFallback:        resp.Breakdown.WeatherFallback,
		},
	}
}
