package get_registry

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/registry/models"
)

type Handler struct {
	service RegistryService
	logger  Logger
}

func NewHandler(service RegistryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/registry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reg, err := h.service.Load(r.Context())
	if err != nil {
		h.logger.Error("GET /registry - Failed to load registry: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRegistry(reg, time.Now().UnixMilli()))
}
