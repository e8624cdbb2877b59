package chat_message

// ChatRequest HTTP request model
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse HTTP response model.
// FollowupQuery заполнен, когда ответ подсвечивает слоты на схеме.
type ChatResponse struct {
	Text          string `json:"text"`
	FollowupQuery string `json:"followupQuery,omitempty"`
	Indices       []int  `json:"indices"`
}
