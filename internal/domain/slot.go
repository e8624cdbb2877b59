package domain

// SlotStatus represents the occupancy status of a parking slot
type SlotStatus string

const (
	StatusEmpty    SlotStatus = "empty"
	StatusOccupied SlotStatus = "occupied"
)

// SlotType represents the category of a parking slot
type SlotType string

const (
	TypeNormal      SlotType = "normal"
	TypeVIP         SlotType = "vip"
	TypeHandicapped SlotType = "handicapped"
)

// TypeKeys lists all slot types in display order
var TypeKeys = []SlotType{TypeNormal, TypeVIP, TypeHandicapped}

// TypeLabels maps slot types to their human-readable labels
var TypeLabels = map[SlotType]string{
	TypeNormal:      "Normal",
	TypeVIP:         "VIP",
	TypeHandicapped: "Handicapped",
}

// IsValidType returns true if the given type is one of the enumerated slot types
func IsValidType(t SlotType) bool {
	_, ok := TypeLabels[t]
	return ok
}

// Slot represents a single trackable parking space.
// Timestamps and durations are in milliseconds; LastFreeDuration and
// LastOccupiedDuration hold the completed duration of the previous opposite
// state, never the in-progress one.
type Slot struct {
	Status               SlotStatus `json:"status"`
	Type                 SlotType   `json:"type"`
	LastChanged          int64      `json:"lastChanged"`
	LastFreeDuration     int64      `json:"lastFreeDuration"`
	LastOccupiedDuration int64      `json:"lastOccupiedDuration"`
	SessionID            *string    `json:"sessionId"`
}

// NewEmptySlot creates a fresh empty slot of the normal type
func NewEmptySlot(nowMs int64) Slot {
	return Slot{
		Status:      StatusEmpty,
		Type:        TypeNormal,
		LastChanged: nowMs,
	}
}

// IsOccupied returns true if the slot currently holds a vehicle
func (s *Slot) IsOccupied() bool {
	return s.Status == StatusOccupied
}

// CurrentDuration returns how long the slot has been in its current state
func (s *Slot) CurrentDuration(nowMs int64) int64 {
	if s.LastChanged == 0 || s.LastChanged > nowMs {
		return 0
	}
	return nowMs - s.LastChanged
}

// PreviousDuration returns the completed duration of the previous opposite state
func (s *Slot) PreviousDuration() int64 {
	if s.Status == StatusOccupied {
		return s.LastFreeDuration
	}
	return s.LastOccupiedDuration
}
