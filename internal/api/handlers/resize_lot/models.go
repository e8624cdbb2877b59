package resize_lot

// ResizeLotRequest HTTP request model
type ResizeLotRequest struct {
	Total int `json:"total"`
}
