package toggle_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/occupancy"
	"github.com/m04kA/SMC-ParkingService/internal/service/registry/models"
)

const (
	msgInvalidSlotIndex = "некорректный индекс слота"
	msgSlotNotFound     = "слот не найден"
)

type Handler struct {
	service OccupancyService
	logger  Logger
}

func NewHandler(service OccupancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotIndex}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["slotIndex"])
	if err != nil {
		h.logger.Warn("POST /slots/{index}/toggle - Invalid slot index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotIndex)
		return
	}

	reg, err := h.service.Toggle(r.Context(), index)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{index}/toggle - Slot not found: index=%d", index)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("POST /slots/{index}/toggle - Failed to toggle slot: index=%d, error=%v", index, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRegistry(reg, time.Now().UnixMilli()))
}
