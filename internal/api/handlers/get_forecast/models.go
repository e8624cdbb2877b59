package get_forecast

import "github.com/m04kA/SMC-ParkingService/internal/service/forecast"

// Статусы прогноза в ответе API
const (
	StatusReady    = "ready"
	StatusDisabled = "disabled"
	StatusEmpty    = "empty"
	StatusError    = "error"
)

// ForecastResponse HTTP response model.
// При недоступном прогнозе Data пуст, а Message объясняет причину.
type ForecastResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    *forecast.Summary `json:"data,omitempty"`
}
