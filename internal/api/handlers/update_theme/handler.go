package update_theme

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	store  ThemeStore
	logger Logger
}

func NewHandler(store ThemeStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle PUT /api/v1/theme
// Неизвестное значение темы нормализуется к светлой, без ошибки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateThemeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /theme - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	saved, err := h.store.SetTheme(r.Context(), req.Theme)
	if err != nil {
		h.logger.Error("PUT /theme - Failed to save theme: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /theme - Theme set to %q", saved)
	handlers.RespondJSON(w, http.StatusOK, ThemeResponse{Theme: saved})
}
