package domain

import "fmt"

// ForecastSummary is the derived rush-hour forecast for a given capacity.
// Probabilities are the fraction of capacity-minutes occupied during each
// hour-of-day, averaged over the tracked window.
type ForecastSummary struct {
	BusyHour        int       `json:"busyHour"`
	EmptyHour       int       `json:"emptyHour"`
	RushProbability float64   `json:"rushProbability"`
	Probabilities   []float64 `json:"probabilities"`
	DayCount        int       `json:"dayCount"`
	SampleSize      int       `json:"sampleSize"`
}

// WaitEstimate is the human wait-time label derived from the rush probability
type WaitEstimate struct {
	Label string `json:"label"`
	ETA   string `json:"eta"`
}

// GetWaitEstimate maps a probability of occupancy to a wait-time estimate
func GetWaitEstimate(probability float64) WaitEstimate {
	switch {
	case probability >= 0.85:
		return WaitEstimate{Label: "Very high", ETA: "15-20 min"}
	case probability >= 0.65:
		return WaitEstimate{Label: "High", ETA: "10-15 min"}
	case probability >= 0.4:
		return WaitEstimate{Label: "Moderate", ETA: "5-8 min"}
	case probability >= 0.2:
		return WaitEstimate{Label: "Low", ETA: "2-4 min"}
	default:
		return WaitEstimate{Label: "Very low", ETA: "< 2 min"}
	}
}

// FormatHourLabel renders an hour-of-day as a 12-hour clock label, e.g. "5:00 PM"
func FormatHourLabel(hour int) string {
	normalized := ((hour % 24) + 24) % 24
	period := "AM"
	if normalized >= 12 {
		period = "PM"
	}
	humanHour := normalized % 12
	if humanHour == 0 {
		humanHour = 12
	}
	return fmt.Sprintf("%d:00 %s", humanHour, period)
}

// FormatDuration renders a millisecond duration as HH:MM:SS
func FormatDuration(ms int64) string {
	totalSeconds := ms / 1000
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// CurrentTimerText renders the in-progress state duration for a slot, e.g. "Occupied for 00:05:12"
func CurrentTimerText(slot *Slot, nowMs int64) string {
	label := "Free for"
	if slot.Status == StatusOccupied {
		label = "Occupied for"
	}
	return fmt.Sprintf("%s %s", label, FormatDuration(slot.CurrentDuration(nowMs)))
}

// PreviousTimerText renders the completed duration of the previous opposite state
func PreviousTimerText(slot *Slot) string {
	label := "Last occupied"
	if slot.Status == StatusOccupied {
		label = "Last free"
	}
	previous := slot.PreviousDuration()
	if previous == 0 {
		return fmt.Sprintf("%s: --", label)
	}
	return fmt.Sprintf("%s: %s", label, FormatDuration(previous))
}
