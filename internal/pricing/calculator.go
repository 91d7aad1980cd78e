// Package pricing чистый расчет погодной надбавки к базовой цене комнаты.
package pricing

import (
	"math"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
)

// Config параметры ценообразования, задаются на уровне деплоймента
type Config struct {
	ComfortableTemperature float64 // Эталонная комфортная температура, °C
	AdjustmentFactor       float64 // Надбавка за градус отклонения (доля от базовой цены)
}

// DefaultConfig возвращает конфигурацию ценообразования по умолчанию
func DefaultConfig() Config {
	return Config{
		ComfortableTemperature: domain.DefaultComfortableTemperature,
		AdjustmentFactor:       domain.DefaultAdjustmentFactor,
	}
}

// Calculator детерминированный калькулятор цены бронирования.
// Не имеет состояния и side-эффектов; одинаковые входы дают одинаковый результат.
type Calculator struct {
	cfg Config
}

// NewCalculator создает калькулятор с переданной конфигурацией
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute вычисляет отклонение температуры от комфортной и скорректированную цену:
//
//	deviation     = |temperature - comfortableTemperature|
//	adjustedPrice = round2(basePrice * (1 + deviation * factor))
func (c *Calculator) Compute(basePrice, temperature float64) (deviation, adjustedPrice float64) {
	deviation = math.Abs(temperature - c.cfg.ComfortableTemperature)
	adjustedPrice = round2(basePrice * (1 + deviation*c.cfg.AdjustmentFactor))
	return deviation, adjustedPrice
}

// ComfortableTemperature возвращает эталонную температуру калькулятора
func (c *Calculator) ComfortableTemperature() float64 {
	return c.cfg.ComfortableTemperature
}

// AdjustmentFactor возвращает коэффициент надбавки калькулятора
func (c *Calculator) AdjustmentFactor() float64 {
	return c.cfg.AdjustmentFactor
}

// Breakdown расшифровка расчета цены, возвращается вместе с созданным бронированием
type Breakdown struct {
	BasePrice              float64
	Temperature            float64
	ComfortableTemperature float64
	Deviation              float64
	AdjustmentFactor       float64
	AdjustedPrice          float64
	WeatherFallback        bool
}

// round2 округляет до 2 знаков (half-up для положительных значений)
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
