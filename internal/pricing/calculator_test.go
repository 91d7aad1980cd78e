package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCompute_ReferenceTable(t *testing.T) {
	calc := NewCalculator(Config{ComfortableTemperature: 21, AdjustmentFactor: 0.05})

	tests := []struct {
		name         string
		basePrice    float64
		temperature  float64
		wantDev      float64
		wantAdjusted float64
	}{
		{"комфортная температура без надбавки", 100, 21, 0, 100.00},
		{"отклонение на 3 градуса вниз", 100, 18, 3, 115.00},
		{"отклонение на 6 градусов вниз", 250, 15, 6, 325.00},
		{"отклонение на 6 градусов вверх", 250, 27, 6, 325.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, adjusted := calc.Compute(tt.basePrice, tt.temperature)
			assert.Equal(t, tt.wantDev, dev)
			assert.Equal(t, tt.wantAdjusted, adjusted)
		})
	}
}

func TestCompute_Rounding(t *testing.T) {
	calc := NewCalculator(Config{ComfortableTemperature: 21, AdjustmentFactor: 0.05})

	// 99.99 * (1 + 1*0.05) = 104.9895 -> 104.99
	_, adjusted := calc.Compute(99.99, 22)
	assert.Equal(t, 104.99, adjusted)
}

func TestCompute_ZeroBasePrice(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	dev, adjusted := calc.Compute(0, 10)
	assert.Equal(t, 11.0, dev)
	assert.Equal(t, 0.0, adjusted)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 21.0, cfg.ComfortableTemperature)
	require.Equal(t, 0.05, cfg.AdjustmentFactor)
}

func TestCompute_Properties(t *testing.T) {
	calc := NewCalculator(Config{ComfortableTemperature: 21, AdjustmentFactor: 0.05})

	rapid.Check(t, func(t *rapid.T) {
		basePrice := rapid.Float64Range(0, 100000).Draw(t, "basePrice")
		temperature := rapid.Float64Range(-50, 60).Draw(t, "temperature")

		dev1, price1 := calc.Compute(basePrice, temperature)
		dev2, price2 := calc.Compute(basePrice, temperature)

		// Детерминированность: повторный расчет дает бит-в-бит тот же результат
		if dev1 != dev2 || price1 != price2 {
			t.Fatalf("compute is not deterministic: (%v,%v) != (%v,%v)", dev1, price1, dev2, price2)
		}

		// Отклонение неотрицательно, цена не ниже округленной базовой
		if dev1 < 0 {
			t.Fatalf("deviation is negative: %v", dev1)
		}
		if price1 < round2(basePrice)-0.01 {
			t.Fatalf("adjusted price %v is below base price %v", price1, basePrice)
		}
	})
}
