package models

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotResponse DTO одного парковочного слота
type SlotResponse struct {
	Index       int     `json:"index"`
	Number      int     `json:"number"` // 1-based, для пользовательского текста
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	TypeLabel   string  `json:"typeLabel"`
	SessionID   *string `json:"sessionId,omitempty"`
	LastChanged int64   `json:"lastChanged"`

	// Таймеры текущего и предыдущего состояния
	CurrentTimer  string `json:"currentTimer"`  // "Occupied for 00:05:12"
	PreviousTimer string `json:"previousTimer"` // "Last free: 01:10:03"
}

// RegistryResponse DTO snapshot'а реестра
type RegistryResponse struct {
	Total     int            `json:"total"`
	UpdatedAt int64          `json:"updatedAt"`
	Slots     []SlotResponse `json:"slots"`
	Counts    domain.Counts  `json:"counts"`
}

// FromDomainRegistry конвертирует domain модель в DTO.
// nowMs нужен для рендеринга длительности текущего состояния.
func FromDomainRegistry(reg *domain.Registry, nowMs int64) *RegistryResponse {
	if reg == nil {
		return nil
	}

	resp := &RegistryResponse{
		Total:     reg.Total,
		UpdatedAt: reg.UpdatedAt,
		Slots:     make([]SlotResponse, len(reg.Slots)),
		Counts:    reg.GetCounts(),
	}

	for i := range reg.Slots {
		slot := &reg.Slots[i]
		resp.Slots[i] = SlotResponse{
			Index:         i,
			Number:        i + 1,
			Status:        string(slot.Status),
			Type:          string(slot.Type),
			TypeLabel:     domain.TypeLabels[slot.Type],
			SessionID:     slot.SessionID,
			LastChanged:   slot.LastChanged,
			CurrentTimer:  domain.CurrentTimerText(slot, nowMs),
			PreviousTimer: domain.PreviousTimerText(slot),
		}
	}

	return resp
}
