package update_theme

// UpdateThemeRequest HTTP request model
type UpdateThemeRequest struct {
	Theme string `json:"theme"`
}

// ThemeResponse HTTP response model.
// Возвращает фактически сохранённое значение после нормализации.
type ThemeResponse struct {
	Theme string `json:"theme"`
}
