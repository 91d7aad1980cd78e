package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a whole-day conference room reservation
type Booking struct {
	ID        int64
	Reference string // Человекочитаемый номер бронирования, генерируется при создании
	UserID    int64
	RoomID    int64

	BookingDate time.Time // Дата бронирования без компонента времени (UTC)

	// Pricing fields, immutable after creation
	BasePrice       float64
	Temperature     float64
	Deviation       float64
	AdjustedPrice   float64
	WeatherFallback bool

	Status BookingStatus

	// Denormalized data for history
	UserEmail    string
	UserName     string
	RoomName     string
	LocationName string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
// (cancelled bookings release the slot, completed ones keep it)
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the booking has been completed
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// BookingsFilter фильтр для административного списка бронирований
type BookingsFilter struct {
	UserID          *int64         // Фильтр по пользователю (опционально)
	RoomID          *int64         // Фильтр по комнате (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
