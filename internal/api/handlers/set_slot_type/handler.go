package set_slot_type

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/occupancy"
	"github.com/m04kA/SMC-ParkingService/internal/service/registry/models"
)

const (
	msgInvalidSlotIndex   = "некорректный индекс слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
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

// Handle PUT /api/v1/slots/{slotIndex}/type
// Неизвестный тип считается no-op: возвращается неизменённое состояние (200)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["slotIndex"])
	if err != nil {
		h.logger.Warn("PUT /slots/{index}/type - Invalid slot index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotIndex)
		return
	}

	var req SetSlotTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{index}/type - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reg, err := h.service.SetType(r.Context(), index, domain.SlotType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{index}/type - Slot not found: index=%d", index)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("PUT /slots/{index}/type - Failed to set type: index=%d, error=%v", index, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRegistry(reg, time.Now().UnixMilli()))
}
