package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	catalogClient "github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/catalogservice"
)

// UseCase use case проверки доступности комнаты в диапазоне дат.
// Возвращает занятые даты, чтобы вызывающий мог выбрать свободную
// без перебора вслепую.
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: room=%d, range=%s..%s",
		req.RoomID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	startDate := truncateToDate(req.StartDate)
	endDate := truncateToDate(req.EndDate)

	// 2. Проверяем существование комнаты в каталоге.
	// Неактивная комната остается видимой: по ней могут существовать
	// старые активные бронирования.
	if _, err := uc.catalogClient.GetRoom(ctx, req.RoomID); err != nil {
		if errors.Is(err, catalogClient.ErrRoomNotFound) {
			uc.logger.Warn("CheckAvailability: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CheckAvailability: catalog failed for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	// 3. Получаем активные бронирования в диапазоне
	bookings, err := uc.bookingRepo.GetByRoomInRange(ctx, req.RoomID, startDate, endDate)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Собираем множество занятых дат
	availability := &domain.RoomAvailability{
		RoomID:    req.RoomID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	for _, booking := range bookings {
		availability.BookedDates = append(availability.BookedDates, booking.BookingDate)
	}

	uc.logger.Info("CheckAvailability: room=%d has %d booked dates in range", req.RoomID, availability.Count())

	return &Response{Availability: availability}, nil
}
