package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	bookingRepo "github.com/meteoroom/MeteoRoom-BookingService/internal/infra/storage/booking"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/notifyservice"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/service/bookings/models"
)

// Service сервис чтения и отмены бронирований.
// Правило доступа везде одно: операция разрешена владельцу бронирования
// или администратору.
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	dispatcher  NotificationDispatcher
	logger      Logger
	metrics     Metrics
}

// NewService создает новый экземпляр сервиса бронирований.
// metrics может быть nil, если сбор метрик выключен.
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	dispatcher NotificationDispatcher,
	logger Logger,
	metrics Metrics,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		dispatcher:  dispatcher,
		logger:      logger,
		metrics:     metrics,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу бронирования и администратору.
func (s *Service) GetByID(ctx context.Context, principal *domain.Principal, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.ID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !principal.CanAccessUser(booking.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Опционально фильтрует по статусу. Доступно владельцу и администратору.
func (s *Service) GetUserBookings(ctx context.Context, principal *domain.Principal, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d requested by user=%d", req.UserID, principal.ID)

	if !principal.CanAccessUser(req.UserID) {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d", principal.ID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListAll получает бронирования всех пользователей с фильтрацией.
// Доступно только администратору.
func (s *Service) ListAll(ctx context.Context, principal *domain.Principal, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListAll: requested by user=%d", principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("ListAll: access denied for non-admin user=%d", principal.ID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAll: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetAllWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Переходы статусов односторонние: confirmed -> cancelled. Повторная отмена
// и отмена завершенного бронирования отклоняются. После отмены слот
// (roomId, date) снова доступен для бронирования.
func (s *Service) Cancel(ctx context.Context, principal *domain.Principal, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, principal.ID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		if !principal.CanAccessUser(booking.UserID) {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", principal.ID, bookingID)
			return ErrAccessDenied
		}

		switch booking.Status {
		case domain.StatusCancelled:
			s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
			return ErrAlreadyCancelled
		case domain.StatusCompleted:
			s.logger.Warn("Cancel: booking id=%d is completed and cannot be cancelled", bookingID)
			return ErrCannotCancelCompleted
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: cancelled booking id=%d", bookingID)
	if s.metrics != nil {
		s.metrics.IncBookingCancelled()
	}

	// Уведомление об отмене - асинхронно, не блокирует ответ
	s.dispatcher.Dispatch(&notifyservice.Event{
		Type: notifyservice.EventBookingCancellation,
		Booking: notifyservice.EventBooking{
			ID:            cancelled.ID,
			Reference:     cancelled.Reference,
			UserEmail:     cancelled.UserEmail,
			UserName:      cancelled.UserName,
			RoomName:      cancelled.RoomName,
			LocationName:  cancelled.LocationName,
			BookingDate:   cancelled.BookingDate.Format(domain.DateFormat),
			AdjustedPrice: cancelled.AdjustedPrice,
			Status:        string(domain.StatusCancelled),
		},
	})

	// Возвращаем актуальное состояние
	updated, err := s.getBooking(ctx, bookingID)
	if err != nil {
		// Отмена уже состоялась; отдаем локальную копию с новым статусом
		cancelled.Status = domain.StatusCancelled
		return models.FromDomainBooking(cancelled), nil
	}

	return models.FromDomainBooking(updated), nil
}

// getBooking читает бронирование и транслирует ошибки репозитория
func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}
