package chat_message

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/chat
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chat - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Chat(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("POST /chat - Failed to build reply: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	indices := result.Indices
	if indices == nil {
		indices = []int{}
	}

	handlers.RespondJSON(w, http.StatusOK, ChatResponse{
		Text:          result.Text,
		FollowupQuery: result.FollowupQuery,
		Indices:       indices,
	})
}
