package set_slot_type

// SetSlotTypeRequest HTTP request model
type SetSlotTypeRequest struct {
	Type string `json:"type"`
}
