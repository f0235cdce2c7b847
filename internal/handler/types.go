package handler

// --- Request Structs ---

type choiceRequest struct {
	ChoiceID string `json:"choice_id" binding:"required"`
}

type jumpRequest struct {
	Day string `json:"day" binding:"required"`
}
