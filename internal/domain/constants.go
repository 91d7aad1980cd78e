package domain

// Default pricing configuration values
const (
	DefaultComfortableTemperature = 21.0
	DefaultAdjustmentFactor       = 0.05
)

// Weather cache defaults
const (
	DefaultForecastTTLHours = 24
)

// Business validation constants
const (
	MaxAvailabilityRangeDays    = 365
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие слот.
// Используются при фильтрации активных бронирований.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses статусы, занимающие слот (roomId, bookingDate)
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
