package series

import (
	"time"

	"github.com/bitmark-inc/casecounts/schema"
)

// ChangeRate - percentage change from old to new, 100 when growing from zero
func ChangeRate(new, old float64) float64 {
	if old == 0 {
		if new == 0 {
			return float64(0)
		} else {
			return float64(100)
		}
	}

	return (new - old) / old * 100
}

type Summary struct {
	Days            int       `json:"days"`
	LastDate        time.Time `json:"last_date"`
	Confirmed       float64   `json:"confirmed"`
	DailyCases      float64   `json:"daily_cases"`
	DailyPer100k    float64   `json:"daily_per_100k"`
	TotalPer100k    float64   `json:"total_per_100k"`
	DailyChangeRate float64   `json:"daily_change_rate"`
	PeakDailyCases  float64   `json:"peak_daily_cases"`
	PeakDayNo       int       `json:"peak_day_no"`
}

// Summarize reports the latest point of a series, its day over day
// change of smoothed daily cases and the peak of smoothed daily cases
func Summarize(s schema.Series) Summary {
	var sum Summary
	n := len(s.Points)
	if n == 0 {
		return sum
	}

	latest := s.Points[n-1]
	sum.Days = n
	sum.LastDate = latest.ReportDate
	sum.Confirmed = latest.Confirmed
	sum.DailyCases = latest.DailyCases
	sum.DailyPer100k = latest.DailyPer100k
	sum.TotalPer100k = latest.TotalPer100k
	if n > 1 {
		sum.DailyChangeRate = ChangeRate(latest.DailyCases, s.Points[n-2].DailyCases)
	}

	for _, p := range s.Points {
		if p.DailyCases > sum.PeakDailyCases {
			sum.PeakDailyCases = p.DailyCases
			sum.PeakDayNo = p.DayNo
		}
	}
	return sum
}
