package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	checkAvailability "github.com/meteoroom/MeteoRoom-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidDateRange   = "некорректный диапазон дат, ожидается startDate и endDate в формате YYYY-MM-DD"
	msgRangeTooWide       = "диапазон дат превышает допустимый предел"
	msgRoomNotFound       = "комната не найдена"
	msgCatalogUnavailable = "каталог комнат временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability?startDate=2026-09-01&endDate=2026-09-30
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	startDate, err := time.ParseInLocation(domain.DateFormat, query.Get("startDate"), time.UTC)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	endDate, err := time.ParseInLocation(domain.DateFormat, query.Get("endDate"), time.UTC)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		RoomID:    roomID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidRange):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid range: room_id=%d: %v", roomID, err)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid input: room_id=%d: %v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, checkAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, checkAvailability.ErrCatalogUnavailable):
			h.logger.Error("GET /rooms/{id}/availability - Catalog unavailable: room_id=%d: %v", roomID, err)
			handlers.RespondServiceUnavailable(w, msgCatalogUnavailable)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to check availability: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - Availability checked: room_id=%d, booked=%d",
		roomID, result.Availability.Count())
	handlers.RespondJSON(w, http.StatusOK, FromDomainAvailability(result.Availability))
}
