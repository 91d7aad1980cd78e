package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/api/middleware"
	createBooking "github.com/meteoroom/MeteoRoom-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgDateNotInFuture    = "дата бронирования должна быть строго в будущем"
	msgRoomNotFound       = "комната не найдена"
	msgRoomInactive       = "комната недоступна для бронирования"
	msgCatalogUnavailable = "каталог комнат временно недоступен, попробуйте позже"
	msgSlotAlreadyBooked  = "комната уже забронирована на выбранную дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse booking date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date not in future: user_id=%d, date=%s", principal.ID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateNotInFuture)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d: %v", principal.ID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: user_id=%d, room_id=%d", principal.ID, req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrRoomInactive):
			h.logger.Warn("POST /bookings - Room inactive: user_id=%d, room_id=%d", principal.ID, req.RoomID)
			handlers.RespondBadRequest(w, msgRoomInactive)

		case errors.Is(err, createBooking.ErrCatalogUnavailable):
			h.logger.Error("POST /bookings - Catalog unavailable: room_id=%d: %v", req.RoomID, err)
			handlers.RespondServiceUnavailable(w, msgCatalogUnavailable)

		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: user_id=%d, room_id=%d, date=%s", principal.ID, req.RoomID, req.BookingDate)
			message := msgSlotAlreadyBooked
			var conflict *createBooking.SlotConflictError
			if errors.As(err, &conflict) {
				message = fmt.Sprintf("%s (конфликтующее бронирование: id=%d, статус=%s)", msgSlotAlreadyBooked, conflict.BookingID, conflict.Status)
			}
			handlers.RespondConflict(w, message)

		default:
			h.logger.Error("POST /bookings - Internal error: user_id=%d, room_id=%d: %v", principal.ID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, user_id=%d, room_id=%d, date=%s",
		result.Booking.ID, principal.ID, req.RoomID, req.BookingDate)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
