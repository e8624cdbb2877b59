package get_theme

// ThemeResponse HTTP response model
type ThemeResponse struct {
	Theme string `json:"theme"`
}
