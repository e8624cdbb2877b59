package domain

import "encoding/json"

// Registry is the canonical snapshot of all parking slots.
// Slot identity is positional: index 0 maps to "Slot 1" in user-facing text.
// Invariant after any mutating operation: len(Slots) == Total.
type Registry struct {
	Total     int    `json:"total"`
	Slots     []Slot `json:"slots"`
	UpdatedAt int64  `json:"updatedAt"`
}

// NewDefaultRegistry synthesizes a registry of the default capacity, all slots empty
func NewDefaultRegistry(nowMs int64) *Registry {
	slots := make([]Slot, DefaultTotalSlots)
	for i := range slots {
		slots[i] = NewEmptySlot(nowMs)
	}
	return &Registry{
		Total:     DefaultTotalSlots,
		Slots:     slots,
		UpdatedAt: nowMs,
	}
}

// ClampTotal clamps a requested capacity to [MinSlots, MaxSlots].
// Only a zero (absent) value falls back to the default capacity; negatives
// clamp to the lower bound like any other out-of-range request.
func ClampTotal(total int) int {
	if total == 0 {
		total = DefaultTotalSlots
	}
	if total < MinSlots {
		return MinSlots
	}
	if total > MaxSlots {
		return MaxSlots
	}
	return total
}

// Counts is the aggregate occupancy summary for a registry snapshot
type Counts struct {
	Empty       int `json:"empty"`
	Occupied    int `json:"occupied"`
	VIPFree     int `json:"vipFree"`
	VIPTotal    int `json:"vipTotal"`
	Occupancy   int `json:"occupancy"`   // percent occupied, rounded
	FreePercent int `json:"freePercent"` // percent free, rounded
}

// GetCounts computes the occupancy summary for the registry
func (r *Registry) GetCounts() Counts {
	c := Counts{}
	for i := range r.Slots {
		slot := &r.Slots[i]
		if slot.Status == StatusOccupied {
			c.Occupied++
		}
		if slot.Type == TypeVIP {
			c.VIPTotal++
			if slot.Status == StatusEmpty {
				c.VIPFree++
			}
		}
	}
	c.Empty = r.Total - c.Occupied
	if r.Total > 0 {
		c.Occupancy = roundPercent(c.Occupied, r.Total)
		c.FreePercent = roundPercent(c.Empty, r.Total)
	}
	return c
}

func roundPercent(part, total int) int {
	return int(float64(part)/float64(total)*100 + 0.5)
}

// NormalizeRegistry repairs a raw decoded registry blob into a valid snapshot.
// Returns the repaired registry and whether any repair was applied.
//
// Repair rules:
//   - missing/non-array slots -> full default registry
//   - each entry normalized via NormalizeSlotValue
//   - len(slots) != total -> truncate or extend with fresh empty slots
func NormalizeRegistry(raw []byte, nowMs int64) (*Registry, bool) {
	changed := false

	var decoded struct {
		Total     int               `json:"total"`
		Slots     []json.RawMessage `json:"slots"`
		UpdatedAt int64             `json:"updatedAt"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &decoded) != nil || decoded.Slots == nil {
		return NewDefaultRegistry(nowMs), true
	}

	reg := &Registry{
		Total:     decoded.Total,
		UpdatedAt: decoded.UpdatedAt,
		Slots:     make([]Slot, 0, len(decoded.Slots)),
	}
	if reg.Total <= 0 {
		reg.Total = DefaultTotalSlots
		changed = true
	}

	for _, entry := range decoded.Slots {
		slot, repaired := NormalizeSlotValue(entry, nowMs)
		if repaired {
			changed = true
		}
		reg.Slots = append(reg.Slots, slot)
	}

	if len(reg.Slots) != reg.Total {
		changed = true
		if len(reg.Slots) > reg.Total {
			reg.Slots = reg.Slots[:reg.Total]
		} else {
			for len(reg.Slots) < reg.Total {
				reg.Slots = append(reg.Slots, NewEmptySlot(nowMs))
			}
		}
	}

	return reg, changed
}

// NormalizeSlotValue repairs a single raw slot entry.
// Unknown status -> empty, unknown type -> normal, non-numeric timestamps -> now,
// non-numeric durations -> 0, session id kept only when it is a string.
// A bare string entry is treated as a status value.
func NormalizeSlotValue(raw json.RawMessage, nowMs int64) (Slot, bool) {
	var asString string
	if json.Unmarshal(raw, &asString) == nil {
		slot := NewEmptySlot(nowMs)
		if SlotStatus(asString) == StatusOccupied {
			slot.Status = StatusOccupied
		}
		return slot, true
	}

	var entry map[string]json.RawMessage
	if json.Unmarshal(raw, &entry) != nil || entry == nil {
		return NewEmptySlot(nowMs), true
	}

	slot := NewEmptySlot(nowMs)
	changed := false

	var status string
	if json.Unmarshal(entry["status"], &status) == nil && SlotStatus(status) == StatusOccupied {
		slot.Status = StatusOccupied
	} else if SlotStatus(status) != StatusEmpty {
		changed = true
	}

	var slotType string
	if json.Unmarshal(entry["type"], &slotType) == nil && IsValidType(SlotType(slotType)) {
		slot.Type = SlotType(slotType)
	} else if SlotType(slotType) != TypeNormal {
		changed = true
	}

	if ms, ok := decodeMillis(entry["lastChanged"]); ok {
		slot.LastChanged = ms
	} else {
		changed = true
	}
	if ms, ok := decodeMillis(entry["lastFreeDuration"]); ok {
		slot.LastFreeDuration = ms
	} else if entry["lastFreeDuration"] != nil {
		changed = true
	}
	if ms, ok := decodeMillis(entry["lastOccupiedDuration"]); ok {
		slot.LastOccupiedDuration = ms
	} else if entry["lastOccupiedDuration"] != nil {
		changed = true
	}

	var sessionID string
	if json.Unmarshal(entry["sessionId"], &sessionID) == nil && sessionID != "" {
		slot.SessionID = &sessionID
	}

	return slot, changed
}

func decodeMillis(raw json.RawMessage) (int64, bool) {
	if raw == nil {
		return 0, false
	}
	var f float64
	if json.Unmarshal(raw, &f) != nil {
		return 0, false
	}
	return int64(f), true
}
