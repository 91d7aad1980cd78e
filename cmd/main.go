package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/meteoroom/MeteoRoom-BookingService/internal/api/handlers/list_bookings"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/api/middleware"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/config"
	bookingRepo "github.com/meteoroom/MeteoRoom-BookingService/internal/infra/storage/booking"
	catalogServiceClient "github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/catalogservice"
	identityServiceClient "github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/identityservice"
	notifyServiceClient "github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/notifyservice"
	weatherServiceClient "github.com/meteoroom/MeteoRoom-BookingService/internal/integrations/weatherservice"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/notify"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/pricing"
	bookingsService "github.com/meteoroom/MeteoRoom-BookingService/internal/service/bookings"
	checkAvailabilityUC "github.com/meteoroom/MeteoRoom-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/meteoroom/MeteoRoom-BookingService/internal/usecase/create_booking"
	"github.com/meteoroom/MeteoRoom-BookingService/pkg/dbmetrics"
	"github.com/meteoroom/MeteoRoom-BookingService/pkg/logger"
	"github.com/meteoroom/MeteoRoom-BookingService/pkg/metrics"
	"github.com/meteoroom/MeteoRoom-BookingService/pkg/obs"
	"github.com/meteoroom/MeteoRoom-BookingService/pkg/simpletxmanager"
	"github.com/meteoroom/MeteoRoom-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MeteoRoom-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем трассировку (если включена)
	if cfg.Tracing.Enabled {
		shutdownTracer, err := obs.InitTracer(context.Background(), cfg.Metrics.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal("Failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Error("Failed to shutdown tracer: %v", err)
			}
		}()
		log.Info("OTLP tracing enabled, endpoint=%s", cfg.Tracing.Endpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogSvc.URL,
		time.Duration(cfg.CatalogSvc.Timeout)*time.Second,
		log,
	)
	identityClient := identityServiceClient.NewClient(
		cfg.IdentitySvc.URL,
		time.Duration(cfg.IdentitySvc.Timeout)*time.Second,
		log,
	)

	var weatherMetrics weatherServiceClient.Metrics
	if cfg.Metrics.Enabled {
		weatherMetrics = metricsCollector
	}
	weatherClient := weatherServiceClient.NewClient(
		weatherServiceClient.Config{
			BaseURL:                cfg.WeatherSvc.URL,
			Timeout:                time.Duration(cfg.WeatherSvc.Timeout) * time.Second,
			ComfortableTemperature: cfg.Pricing.ComfortableTemperature,
			CacheTTL:               time.Duration(cfg.WeatherSvc.CacheTTLHours) * time.Hour,
			RatePerMinute:          cfg.WeatherSvc.RatePerMinute,
			RateBurst:              cfg.WeatherSvc.RateBurst,
		},
		log,
		weatherMetrics,
	)
	log.Info("Integration clients initialized (CatalogService=%s, IdentityService=%s, WeatherService=%s)",
		cfg.CatalogSvc.URL, cfg.IdentitySvc.URL, cfg.WeatherSvc.URL)

	// Фоновая отправка уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifySvc.URL,
		time.Duration(cfg.NotifySvc.Timeout)*time.Second,
	)
	var notifyMetrics notify.Metrics
	if cfg.Metrics.Enabled {
		notifyMetrics = metricsCollector
	}
	dispatcher := notify.NewDispatcher(
		notifyClient,
		notify.Config{
			QueueSize:   cfg.Notifications.QueueSize,
			Workers:     cfg.Notifications.Workers,
			SendTimeout: time.Duration(cfg.Notifications.SendTimeout) * time.Second,
		},
		log,
		notifyMetrics,
	)
	dispatcher.Start()
	log.Info("Notification dispatcher started (queue=%d, workers=%d)",
		cfg.Notifications.QueueSize, cfg.Notifications.Workers)

	// Калькулятор погодного ценообразования
	calculator := pricing.NewCalculator(pricing.Config{
		ComfortableTemperature: cfg.Pricing.ComfortableTemperature,
		AdjustmentFactor:       cfg.Pricing.AdjustmentFactor,
	})

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Репозиторий и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	var svcMetrics bookingsService.Metrics
	if cfg.Metrics.Enabled {
		svcMetrics = metricsCollector
	}
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		dispatcher,
		log,
		svcMetrics,
	)

	// Инициализируем use cases
	var ucMetrics createBookingUC.Metrics
	if cfg.Metrics.Enabled {
		ucMetrics = metricsCollector
	}
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogClient,
		weatherClient,
		calculator,
		dispatcher,
		txMgr,
		log,
		ucMetrics,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятые даты комнаты в диапазоне
	api.HandleFunc("/rooms/{roomId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer-токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(identityClient, log))

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Административный список бронирований
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся доставки уведомлений из очереди
	dispatcher.Stop(shutdownCtx)
	log.Info("Notification dispatcher stopped")

	log.Info("Server stopped gracefully")
}
