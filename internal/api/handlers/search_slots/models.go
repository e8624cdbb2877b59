package search_slots

// SearchResponse HTTP response model.
// Indices всегда сериализуется массивом, даже пустым.
type SearchResponse struct {
	Indices []int  `json:"indices"`
	Message string `json:"message"`
}
