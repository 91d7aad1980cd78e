package models

import (
	"errors"
	"time"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Status *string // Фильтр по статусу (опционально)
}

// ListBookingsRequest запрос административного списка бронирований
type ListBookingsRequest struct {
	UserID          *int64
	RoomID          *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:          r.UserID,
		RoomID:          r.RoomID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	Reference   string `json:"reference"`
	UserID      int64  `json:"userId"`
	RoomID      int64  `json:"roomId"`
	BookingDate string `json:"bookingDate"` // "2026-09-15"

	BasePrice       float64 `json:"basePrice"`
	Temperature     float64 `json:"temperature"`
	Deviation       float64 `json:"deviation"`
	AdjustedPrice   float64 `json:"adjustedPrice"`
	WeatherFallback bool    `json:"weatherFallback"`

	Status string `json:"status"`

	// Денормализованные данные
	UserEmail    string `json:"userEmail"`
	UserName     string `json:"userName"`
	RoomName     string `json:"roomName"`
	LocationName string `json:"locationName"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		Reference:   b.Reference,
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),

		BasePrice:       b.BasePrice,
		Temperature:     b.Temperature,
		Deviation:       b.Deviation,
		AdjustedPrice:   b.AdjustedPrice,
		WeatherFallback: b.WeatherFallback,

		Status: string(b.Status),

		UserEmail:    b.UserEmail,
		UserName:     b.UserName,
		RoomName:     b.RoomName,
		LocationName: b.LocationName,

		CancellationReason: b.CancellationReason,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
