package get_forecast

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/forecast"
)

const (
	msgDisabled = "Connect a session log to enable predictions."
	msgEmpty    = "Need more historical data to forecast rush hours."
	msgError    = "Couldn't load predictions. Please try again soon."
)

type Handler struct {
	registry   RegistryService
	forecaster ForecastService
	logger     Logger
}

func NewHandler(registry RegistryService, forecaster ForecastService, logger Logger) *Handler {
	return &Handler{
		registry:   registry,
		forecaster: forecaster,
		logger:     logger,
	}
}

// Handle GET /api/v1/forecast
// Недоступность прогноза не является ошибкой запроса: отдаётся 200 со статусом
// disabled/empty/error, чтобы вызывающая сторона показала заглушку.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reg, err := h.registry.Load(r.Context())
	if err != nil {
		h.logger.Error("GET /forecast - Failed to load registry: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	summary, err := h.forecaster.Forecast(r.Context(), reg.Total)
	if err != nil {
		switch {
		case errors.Is(err, forecast.ErrDisabled):
			handlers.RespondJSON(w, http.StatusOK, ForecastResponse{Status: StatusDisabled, Message: msgDisabled})

		case errors.Is(err, forecast.ErrInsufficientData):
			handlers.RespondJSON(w, http.StatusOK, ForecastResponse{Status: StatusEmpty, Message: msgEmpty})

		default:
			h.logger.Error("GET /forecast - Forecast failed: %v", err)
			handlers.RespondJSON(w, http.StatusOK, ForecastResponse{Status: StatusError, Message: msgError})
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ForecastResponse{Status: StatusReady, Data: summary})
}
