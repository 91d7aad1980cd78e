package notifyservice

// EventType тип события уведомления
type EventType string

const (
	EventBookingConfirmation EventType = "booking_confirmation"
	EventBookingCancellation EventType = "booking_cancellation"
)

// Event событие для notification-сервиса
type Event struct {
	Type    EventType    `json:"type"`
	Booking EventBooking `json:"booking"`
}

// EventBooking денормализованные данные бронирования в уведомлении
type EventBooking struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	UserEmail     string  `json:"userEmail"`
	UserName      string  `json:"userName"`
	RoomName      string  `json:"roomName"`
	LocationName  string  `json:"locationName"`
	BookingDate   string  `json:"bookingDate"` // YYYY-MM-DD
	AdjustedPrice float64 `json:"adjustedPrice"`
	Status        string  `json:"status"`
}
