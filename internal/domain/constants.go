package domain

import "time"

// Capacity constraints
const (
	DefaultTotalSlots = 20
	MinSlots          = 1
	MaxSlots          = 100
)

// Forecast parameters
const (
	RushLookbackDays  = 7
	ForecastCacheTTL  = 5 * time.Minute
	MinutesPerSlotDay = 60 // minutes available per slot per hour-of-day bucket
)

// Storage keys
const (
	RegistryKey = "parkingSlots"
	ThemeKey    = "parkingTheme"
)

// Theme preference values
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// NormalizeTheme maps any persisted value to a valid theme, defaulting to light
func NormalizeTheme(theme string) string {
	if theme == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}
