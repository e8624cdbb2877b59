package resize_lot

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/registry/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service  RegistryService
	forecast ForecastInvalidator
	logger   Logger
}

func NewHandler(service RegistryService, forecast ForecastInvalidator, logger Logger) *Handler {
	return &Handler{
		service:  service,
		forecast: forecast,
		logger:   logger,
	}
}

// Handle PUT /api/v1/registry/total
// Запрошенная вместимость зажимается в допустимый диапазон; уменьшение
// отбрасывает хвостовые слоты без архивации.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ResizeLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /registry/total - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reg, err := h.service.Resize(r.Context(), req.Total)
	if err != nil {
		h.logger.Error("PUT /registry/total - Failed to resize: total=%d, error=%v", req.Total, err)
		handlers.RespondInternalError(w)
		return
	}

	if h.forecast != nil {
		h.forecast.Invalidate()
	}

	h.logger.Info("PUT /registry/total - Resized to %d slots", reg.Total)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRegistry(reg, time.Now().UnixMilli()))
}
