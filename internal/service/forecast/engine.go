package forecast

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// calculateRushForecast сворачивает историю сессий в почасовые вероятности
// занятости (minute-bucket redistribution).
//
// Каждая сессия разбивается на отрезки внутри одного календарного часа;
// минуты отрезка попадают в аккумулятор соответствующего часа суток, а
// затронутые календарные дни собираются в множество. Вероятность часа равна
// накопленным минутам, делённым на 60 * totalSlots * trackedDays.
func calculateRushForecast(
	sessions []*domain.SessionRecord,
	totalSlots int,
	lookbackDays int,
	nowMs int64,
	loc *time.Location,
) (*domain.ForecastSummary, error) {
	if totalSlots <= 0 {
		return nil, ErrInvalidCapacity
	}
	if len(sessions) == 0 {
		return nil, ErrInsufficientData
	}

	var buckets [24]float64
	days := make(map[string]struct{})

	for _, session := range sessions {
		start := session.TimeIn
		end := session.EndOrNow(nowMs)
		if end <= start {
			continue
		}
		distributeSessionMinutes(&buckets, start, end, days, loc)
	}

	if len(days) == 0 {
		return nil, ErrInsufficientData
	}

	trackedDays := len(days)
	if trackedDays > lookbackDays {
		trackedDays = lookbackDays
	}
	denominator := float64(domain.MinutesPerSlotDay * totalSlots * trackedDays)
	if denominator == 0 {
		return nil, ErrInsufficientData
	}

	probabilities := make([]float64, 24)
	for h, minutes := range buckets {
		p := minutes / denominator
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		probabilities[h] = p
	}

	busyHour, emptyHour := 0, 0
	for h, p := range probabilities {
		if p > probabilities[busyHour] {
			busyHour = h
		}
		if p < probabilities[emptyHour] {
			emptyHour = h
		}
	}

	currentHour := time.UnixMilli(nowMs).In(loc).Hour()

	return &domain.ForecastSummary{
		BusyHour:        busyHour,
		EmptyHour:       emptyHour,
		RushProbability: probabilities[currentHour],
		Probabilities:   probabilities,
		DayCount:        trackedDays,
		SampleSize:      len(sessions),
	}, nil
}

// distributeSessionMinutes раскладывает интервал [startMs, endMs) по часовым
// аккумуляторам, корректно пересекая границы часа и суток. Курсор двигается
// до min(end, конец текущего часа), затем на 1мс за конец отрезка.
func distributeSessionMinutes(buckets *[24]float64, startMs, endMs int64, days map[string]struct{}, loc *time.Location) {
	cursor := startMs
	for cursor < endMs {
		cursorTime := time.UnixMilli(cursor).In(loc)
		days[cursorTime.Format("2006-01-02")] = struct{}{}

		hour := cursorTime.Hour()
		hourEnd := time.Date(
			cursorTime.Year(), cursorTime.Month(), cursorTime.Day(),
			hour, 59, 59, 999_000_000, loc,
		).UnixMilli()

		segmentEnd := endMs
		if hourEnd < segmentEnd {
			segmentEnd = hourEnd
		}

		minutes := float64(segmentEnd-cursor) / 60000
		if minutes > 0 {
			buckets[hour] += minutes
		}
		cursor = segmentEnd + 1
	}
}
