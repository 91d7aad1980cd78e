package weatherservice

// Forecast прогноз температуры для (locationId, date).
// Fallback=true означает, что оракул был недоступен и подставлено
// нейтральное значение (комфортная температура).
type Forecast struct {
	Temperature float64
	Fallback    bool
}

// forecastResponse модель ответа погодного оракула
type forecastResponse struct {
	Temperature float64 `json:"temperature"`
}
