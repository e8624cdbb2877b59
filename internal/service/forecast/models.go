package forecast

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Summary прогноз с презентационными полями для выдачи наружу
type Summary struct {
	domain.ForecastSummary

	BusyLabel   string `json:"busyLabel"`   // "5:00 PM"
	EmptyLabel  string `json:"emptyLabel"`  // "4:00 AM"
	RushPercent int    `json:"rushPercent"` // округлённый процент текущего часа
	WaitLabel   string `json:"waitLabel"`
	WaitETA     string `json:"waitEta"`
}

// newSummary дополняет расчётный прогноз презентационными полями
func newSummary(fs *domain.ForecastSummary) *Summary {
	wait := domain.GetWaitEstimate(fs.RushProbability)
	return &Summary{
		ForecastSummary: *fs,
		BusyLabel:       domain.FormatHourLabel(fs.BusyHour),
		EmptyLabel:      domain.FormatHourLabel(fs.EmptyHour),
		RushPercent:     int(fs.RushProbability*100 + 0.5),
		WaitLabel:       wait.Label,
		WaitETA:         wait.ETA,
	}
}
