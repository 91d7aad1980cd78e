package weatherservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учета fallback-прогнозов (опционально)
type Metrics interface {
	IncWeatherFallback()
}

// Config настройки клиента погодного оракула
type Config struct {
	BaseURL                string
	Timeout                time.Duration
	ComfortableTemperature float64 // Нейтральное значение для fallback-прогноза
	CacheTTL               time.Duration
	RatePerMinute          int // Лимит обращений к оракулу
	RateBurst              int
}

// Client клиент погодного оракула с кэшем и политикой graceful degradation.
//
// Ключевое решение по отказоустойчивости всей системы: ЛЮБАЯ ошибка оракула
// (таймаут, сетевая ошибка, rate limit, 5xx, мусор в ответе) превращается
// в fallback-прогноз с комфортной температурой и deviation=0. Клиент никогда
// не возвращает ошибку - создание бронирования не должно падать из-за
// недоступности необязательного ценового сигнала.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *forecastCache
	limiter    *rate.Limiter
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента погодного сервиса.
// metrics может быть nil, если сбор метрик выключен.
func NewClient(cfg Config, log Logger, metrics Metrics) *Client {
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 10
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:   newForecastCache(cfg.CacheTTL),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
		log:     log,
		metrics: metrics,
	}
}

// GetForecast возвращает прогноз температуры для (locationId, date).
// Сначала смотрит в кэш; при промахе обращается к оракулу; при любой
// ошибке возвращает fallback-прогноз. Не возвращает ошибку никогда.
func (c *Client) GetForecast(ctx context.Context, locationID int64, date time.Time) *Forecast {
	now := time.Now()
	key := cacheKey(locationID, date)

	if temperature, ok := c.cache.get(key, now); ok {
		return &Forecast{Temperature: temperature, Fallback: false}
	}

	if !c.limiter.Allow() {
		c.log.Warn("GetForecast: oracle rate limit reached, using fallback for location=%d date=%s",
			locationID, date.Format("2006-01-02"))
		return c.fallback()
	}

	temperature, err := c.fetchForecast(ctx, locationID, date)
	if err != nil {
		c.log.Error("GetForecast: oracle failed for location=%d date=%s, using fallback: %v",
			locationID, date.Format("2006-01-02"), err)
		return c.fallback()
	}

	c.cache.set(key, temperature, now)
	c.log.Info("GetForecast: location=%d date=%s temperature=%.1f",
		locationID, date.Format("2006-01-02"), temperature)

	return &Forecast{Temperature: temperature, Fallback: false}
}

// fetchForecast выполняет HTTP-запрос к погодному оракулу
func (c *Client) fetchForecast(ctx context.Context, locationID int64, date time.Time) (float64, error) {
	url := fmt.Sprintf("%s/internal/weather/forecast?locationId=%d&date=%s",
		c.cfg.BaseURL, locationID, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return forecast.Temperature, nil
}

// fallback возвращает нейтральный прогноз: температура равна комфортной,
// то есть отклонение и надбавка к цене получаются нулевыми
func (c *Client) fallback() *Forecast {
	if c.metrics != nil {
		c.metrics.IncWeatherFallback()
	}
	return &Forecast{
		Temperature: c.cfg.ComfortableTemperature,
		Fallback:    true,
	}
}
