package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	bookingRepo "github.com/meteoroom/MeteoRoom-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/catalogservice"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/notifyservice"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/pricing"
)

// UseCase use case для создания бронирования - ядро всей системы.
// Координирует каталог, хранилище, погодный оракул, калькулятор цены
// и фоновые уведомления, соблюдая инвариант "один активный букинг на слот".
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	weatherClient WeatherClient
	calculator    PriceCalculator
	dispatcher    NotificationDispatcher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	metrics       Metrics
	tracer        trace.Tracer
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil, если сбор метрик выключен.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	weatherClient WeatherClient,
	calculator PriceCalculator,
	dispatcher NotificationDispatcher,
	txManager TransactionManager,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		weatherClient: weatherClient,
		calculator:    calculator,
		dispatcher:    dispatcher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		metrics:       metrics,
		tracer:        otel.Tracer("create_booking"),
	}
}

// Execute выполняет use case создания бронирования.
//
// Порядок шагов важен: резервирование слота происходит ДО обращения к
// погодному оракулу, чтобы конфликтующий запрос отклонялся быстро и без
// лишнего внешнего вызова. Слот-проба и вставка выполняются в одной
// сериализуемой транзакции; частичный уникальный индекс в БД остается
// последней линией защиты при конкурентных вставках из разных инстансов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := uc.tracer.Start(ctx, "create_booking.execute",
		trace.WithAttributes(attribute.Int64("booking.room_id", req.RoomID)))
	defer span.End()

	uc.logger.Info("CreateBooking: user=%d, room=%d, date=%s",
		principalID(req), req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты: строго позже сегодняшнего дня (UTC)
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s rejected (today is %s)",
			req.Date.Format(domain.DateFormat), now.UTC().Format(domain.DateFormat))
		return nil, err
	}
	bookingDate := truncateToDate(req.Date)

	// 3. Валидация комнаты через каталог-сервис
	room, err := uc.validateRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	// Переменные для результата транзакции
	var (
		result   *domain.Booking
		forecast *forecastResult
	)

	// 4-6. Резервирование слота, прогноз, расчет цены и вставка -
	// в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4. Проба слота с блокировкой (FOR UPDATE). Конфликт обнаруживается
		// ЗДЕСЬ, до вызова погодного оракула
		existing, err := uc.bookingRepo.GetActiveByRoomAndDate(txCtx, req.RoomID, bookingDate)
		if err == nil {
			uc.logger.Warn("CreateBooking: slot room=%d date=%s taken by booking id=%d status=%s",
				req.RoomID, bookingDate.Format(domain.DateFormat), existing.ID, existing.Status)
			return &SlotConflictError{BookingID: existing.ID, Status: existing.Status}
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: slot probe failed: %v", err)
			return fmt.Errorf("%w: slot probe failed: %v", ErrInternal, err)
		}

		// 5. Прогноз температуры (никогда не падает: при недоступности
		// оракула возвращается fallback с нулевым отклонением)
		fc := uc.weatherClient.GetForecast(txCtx, room.LocationID, bookingDate)
		deviation, adjustedPrice := uc.calculator.Compute(room.BasePrice, fc.Temperature)
		forecast = &forecastResult{temperature: fc.Temperature, fallback: fc.Fallback, deviation: deviation}

		// 6. Вставка подтвержденного бронирования с денормализацией данных
		booking := &domain.Booking{
			Reference:   newBookingReference(),
			UserID:      req.Principal.ID,
			RoomID:      req.RoomID,
			BookingDate: bookingDate,

			BasePrice:       room.BasePrice,
			Temperature:     fc.Temperature,
			Deviation:       deviation,
			AdjustedPrice:   adjustedPrice,
			WeatherFallback: fc.Fallback,

			Status: domain.StatusConfirmed,

			// Денормализация: бронирование остается читаемым, даже если
			// комната или пользователь позже изменятся
			UserEmail:    req.Principal.Email,
			UserName:     req.Principal.Name,
			RoomName:     room.Name,
			LocationName: room.LocationName,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				// Гонка с другим инстансом: индекс сработал на вставке
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
			return nil, uc.conflictDetails(ctx, req.RoomID, bookingDate)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d ref=%s adjusted_price=%.2f fallback=%v",
		result.ID, result.Reference, result.AdjustedPrice, result.WeatherFallback)
	if uc.metrics != nil {
		uc.metrics.IncBookingCreated()
	}

	// 7. Уведомление о подтверждении - асинхронно, не блокирует ответ
	uc.dispatcher.Dispatch(&notifyservice.Event{
		Type:    notifyservice.EventBookingConfirmation,
		Booking: toEventBooking(result),
	})

	// 8. Ответ с расшифровкой цены
	return &Response{
		Booking: result,
		Breakdown: pricing.Breakdown{
			BasePrice:              result.BasePrice,
			Temperature:            forecast.temperature,
			ComfortableTemperature: uc.calculator.ComfortableTemperature(),
			Deviation:              forecast.deviation,
			AdjustmentFactor:       uc.calculator.AdjustmentFactor(),
			AdjustedPrice:          result.AdjustedPrice,
			WeatherFallback:        forecast.fallback,
		},
	}, nil
}

// validateRoom обращается к каталогу и транслирует ошибки клиента
// в ошибки usecase
func (uc *UseCase) validateRoom(ctx context.Context, roomID int64) (*catalogClient.Room, error) {
	ctx, span := uc.tracer.Start(ctx, "create_booking.validate_room")
	defer span.End()

	room, err := uc.catalogClient.ValidateRoom(ctx, roomID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrRoomNotFound):
			uc.logger.Warn("CreateBooking: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		case errors.Is(err, catalogClient.ErrRoomInactive):
			uc.logger.Warn("CreateBooking: room id=%d is inactive", roomID)
			return nil, ErrRoomInactive
		default:
			uc.logger.Error("CreateBooking: catalog failed for room id=%d: %v", roomID, err)
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
	}
	return room, nil
}

// conflictDetails повторно читает занимающее слот бронирование, чтобы вернуть
// вызывающему id и статус конфликта после срабатывания уникального индекса
func (uc *UseCase) conflictDetails(ctx context.Context, roomID int64, date time.Time) error {
	existing, err := uc.bookingRepo.GetActiveByRoomAndDate(ctx, roomID, date)
	if err != nil {
		// Конфликтующая запись могла уже исчезнуть; деталей нет
		return ErrSlotAlreadyBooked
	}
	return &SlotConflictError{BookingID: existing.ID, Status: existing.Status}
}

// forecastResult результат шага прогноза внутри транзакции
type forecastResult struct {
	temperature float64
	deviation   float64
	fallback    bool
}

// newBookingReference генерирует человекочитаемый номер бронирования
func newBookingReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
	return "RB-" + suffix
}

// toEventBooking собирает денормализованные данные бронирования для уведомления
func toEventBooking(b *domain.Booking) notifyservice.EventBooking {
	return notifyservice.EventBooking{
		ID:            b.ID,
		Reference:     b.Reference,
		UserEmail:     b.UserEmail,
		UserName:      b.UserName,
		RoomName:      b.RoomName,
		LocationName:  b.LocationName,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		AdjustedPrice: b.AdjustedPrice,
		Status:        string(b.Status),
	}
}

func principalID(req *Request) int64 {
	if req.Principal == nil {
		return 0
	}
	return req.Principal.ID
}
