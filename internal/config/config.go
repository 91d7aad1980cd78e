package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml при старте
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Tracing       TracingConfig       `toml:"tracing"`
	Pricing       PricingConfig       `toml:"pricing"`
	CatalogSvc    IntegrationConfig   `toml:"catalog_service"`
	IdentitySvc   IntegrationConfig   `toml:"identity_service"`
	WeatherSvc    WeatherConfig       `toml:"weather_service"`
	NotifySvc     IntegrationConfig   `toml:"notification_service"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// TracingConfig настройки OTLP-трассировки
type TracingConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

// PricingConfig параметры погодного ценообразования
type PricingConfig struct {
	ComfortableTemperature float64 `toml:"comfortable_temperature"`
	AdjustmentFactor       float64 `toml:"adjustment_factor"`
}

// IntegrationConfig настройки внешнего HTTP-сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// WeatherConfig настройки клиента погодного сервиса
type WeatherConfig struct {
	URL           string `toml:"url"`
	Timeout       int    `toml:"timeout"`         // секунды
	CacheTTLHours int    `toml:"cache_ttl_hours"` // время жизни кэша прогнозов
	RatePerMinute int    `toml:"rate_per_minute"` // лимит обращений к оракулу
	RateBurst     int    `toml:"rate_burst"`
}

// NotificationsConfig настройки фоновой отправки уведомлений
type NotificationsConfig struct {
	QueueSize   int `toml:"queue_size"`
	Workers     int `toml:"workers"`
	SendTimeout int `toml:"send_timeout"` // секунды
}

// Load читает конфигурацию из toml-файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8084
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Pricing.ComfortableTemperature == 0 {
		c.Pricing.ComfortableTemperature = 21
	}
	if c.Pricing.AdjustmentFactor == 0 {
		c.Pricing.AdjustmentFactor = 0.05
	}
	if c.CatalogSvc.Timeout == 0 {
		c.CatalogSvc.Timeout = 30
	}
	if c.IdentitySvc.Timeout == 0 {
		c.IdentitySvc.Timeout = 30
	}
	if c.WeatherSvc.Timeout == 0 {
		c.WeatherSvc.Timeout = 30
	}
	if c.WeatherSvc.CacheTTLHours == 0 {
		c.WeatherSvc.CacheTTLHours = 24
	}
	if c.WeatherSvc.RatePerMinute == 0 {
		c.WeatherSvc.RatePerMinute = 60
	}
	if c.WeatherSvc.RateBurst == 0 {
		c.WeatherSvc.RateBurst = 10
	}
	if c.NotifySvc.Timeout == 0 {
		c.NotifySvc.Timeout = 10
	}
	if c.Notifications.QueueSize == 0 {
		c.Notifications.QueueSize = 256
	}
	if c.Notifications.Workers == 0 {
		c.Notifications.Workers = 2
	}
	if c.Notifications.SendTimeout == 0 {
		c.Notifications.SendTimeout = 10
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.CatalogSvc.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	if c.IdentitySvc.URL == "" {
		return fmt.Errorf("config: identity_service.url is required")
	}
	if c.WeatherSvc.URL == "" {
		return fmt.Errorf("config: weather_service.url is required")
	}
	if c.NotifySvc.URL == "" {
		return fmt.Errorf("config: notification_service.url is required")
	}
	if c.Pricing.AdjustmentFactor < 0 {
		return fmt.Errorf("config: pricing.adjustment_factor must be non-negative")
	}
	return nil
}
