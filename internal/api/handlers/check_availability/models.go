package check_availability

import (
	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
)

// AvailabilityResponse занятые даты комнаты в запрошенном диапазоне
type AvailabilityResponse struct {
	RoomID      int64    `json:"roomId"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	BookedDates []string `json:"bookedDates"`
}

// FromDomainAvailability конвертирует domain модель в HTTP response
func FromDomainAvailability(a *domain.RoomAvailability) *AvailabilityResponse {
	bookedDates := make([]string, 0, len(a.BookedDates))
	for _, d := range a.BookedDates {
		bookedDates = append(bookedDates, d.Format(domain.DateFormat))
	}

	return &AvailabilityResponse{
		RoomID:      a.RoomID,
		StartDate:   a.StartDate.Format(domain.DateFormat),
		EndDate:     a.EndDate.Format(domain.DateFormat),
		BookedDates: bookedDates,
	}
}
