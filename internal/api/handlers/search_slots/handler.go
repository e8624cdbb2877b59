package search_slots

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Handler struct {
	service QueryService
	logger  Logger
}

func NewHandler(service QueryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/search?q=...
// Нераспознанный запрос не является ошибкой: резолвер возвращает пустой список
// индексов и подсказку в Message.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.Query().Get("q")

	result, err := h.service.Search(r.Context(), rawQuery)
	if err != nil {
		h.logger.Error("GET /search - Failed to resolve query: q=%q, error=%v", rawQuery, err)
		handlers.RespondInternalError(w)
		return
	}

	indices := result.Indices
	if indices == nil {
		indices = []int{}
	}

	handlers.RespondJSON(w, http.StatusOK, SearchResponse{
		Indices: indices,
		Message: result.Message,
	})
}
