package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры административного списка бронирований
func parseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := query.Get("userId"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid userId: %w", err)
		}
		req.UserID = &userID
	}

	if v := query.Get("roomId"); v != "" {
		roomID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid roomId: %w", err)
		}
		req.RoomID = &roomID
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.ParseInLocation(domain.DateFormat, v, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.ParseInLocation(domain.DateFormat, v, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
