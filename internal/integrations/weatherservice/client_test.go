package weatherservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingMetrics struct {
	fallbacks int64
}

func (m *countingMetrics) IncWeatherFallback() {
	atomic.AddInt64(&m.fallbacks, 1)
}

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:                baseURL,
		Timeout:                2 * time.Second,
		ComfortableTemperature: 21,
		CacheTTL:               time.Hour,
		RatePerMinute:          600,
		RateBurst:              100,
	}
}

func forecastDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func TestGetForecast_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/weather/forecast", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("locationId"))
		assert.Equal(t, "2026-09-15", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temperature": 17.5}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nopLogger{}, nil)

	forecast := client.GetForecast(context.Background(), 3, forecastDate())
	require.NotNil(t, forecast)
	assert.Equal(t, 17.5, forecast.Temperature)
	assert.False(t, forecast.Fallback)
}

func TestGetForecast_CacheHitSkipsOracle(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		_, _ = w.Write([]byte(`{"temperature": 25}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nopLogger{}, nil)

	first := client.GetForecast(context.Background(), 3, forecastDate())
	second := client.GetForecast(context.Background(), 3, forecastDate())

	assert.Equal(t, first.Temperature, second.Temperature)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	// Другая локация - отдельный ключ кэша
	client.GetForecast(context.Background(), 4, forecastDate())
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestGetForecast_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	metrics := &countingMetrics{}
	client := NewClient(testConfig(srv.URL), nopLogger{}, metrics)

	forecast := client.GetForecast(context.Background(), 3, forecastDate())
	require.NotNil(t, forecast)
	assert.Equal(t, 21.0, forecast.Temperature)
	assert.True(t, forecast.Fallback)
	assert.Equal(t, int64(1), atomic.LoadInt64(&metrics.fallbacks))
}

func TestGetForecast_FallbackOnGarbageResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{{{not json`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nopLogger{}, nil)

	forecast := client.GetForecast(context.Background(), 3, forecastDate())
	assert.True(t, forecast.Fallback)
	assert.Equal(t, 21.0, forecast.Temperature)
}

func TestGetForecast_FallbackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"temperature": 17}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	client := NewClient(cfg, nopLogger{}, nil)

	forecast := client.GetForecast(context.Background(), 3, forecastDate())
	assert.True(t, forecast.Fallback)
}

func TestGetForecast_FallbackOnUnreachableOracle(t *testing.T) {
	// Закрытый сервер эмулирует сетевую недоступность
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(testConfig(srv.URL), nopLogger{}, nil)

	forecast := client.GetForecast(context.Background(), 3, forecastDate())
	assert.True(t, forecast.Fallback)
}

func TestGetForecast_FallbackOnRateLimit(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		_, _ = w.Write([]byte(`{"temperature": 17}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RatePerMinute = 1
	cfg.RateBurst = 1
	metrics := &countingMetrics{}
	client := NewClient(cfg, nopLogger{}, metrics)

	// Первый запрос укладывается в burst, второй (другой ключ кэша)
	// упирается в лимит
	first := client.GetForecast(context.Background(), 3, forecastDate())
	second := client.GetForecast(context.Background(), 4, forecastDate())

	assert.False(t, first.Fallback)
	assert.True(t, second.Fallback)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, int64(1), atomic.LoadInt64(&metrics.fallbacks))
}

func TestForecastCache_TTLExpiry(t *testing.T) {
	cache := newForecastCache(time.Hour)
	now := time.Now()
	key := cacheKey(3, forecastDate())

	cache.set(key, 17.5, now)

	got, ok := cache.get(key, now.Add(30*time.Minute))
	require.True(t, ok)
	assert.Equal(t, 17.5, got)

	_, ok = cache.get(key, now.Add(2*time.Hour))
	assert.False(t, ok)
}
