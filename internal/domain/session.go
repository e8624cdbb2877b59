package domain

// SessionRecord is one continuous occupancy interval for a slot, as stored in
// the session log. TimeOut is nil while the session is still open.
type SessionRecord struct {
	SessionID  string   `json:"sessionId"`
	SlotIndex  int      `json:"slotIndex"`
	SlotNumber int      `json:"slotNumber"` // 1-based, denormalized for reporting
	SlotType   SlotType `json:"slotType"`
	TimeIn     int64    `json:"timeIn"`
	TimeOut    *int64   `json:"timeOut,omitempty"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
}

// IsOpen returns true if the session has not been closed yet
func (s *SessionRecord) IsOpen() bool {
	return s.TimeOut == nil
}

// EndOrNow returns the session end, attributing open sessions up to now
func (s *SessionRecord) EndOrNow(nowMs int64) int64 {
	if s.TimeOut != nil {
		return *s.TimeOut
	}
	return nowMs
}
