package schema

import "time"

const (
	SeriesCollection = "series"
)

// Unit is a reporting region a series is built for. A country may be
// reported under several names over time, all of them are listed in
// Aliases.
type Unit struct {
	Name               string    `json:"name" bson:"name"`
	Label              string    `json:"label" bson:"label"`
	Level              UnitLevel `json:"level" bson:"level"`
	Aliases            []string  `json:"aliases" bson:"aliases"`
	PopulationOverride float64   `json:"population_override,omitempty" bson:"population_override,omitempty"`
}

// Keys returns the raw table keys matched for the unit
func (u Unit) Keys() []string {
	if len(u.Aliases) == 0 {
		return []string{u.Name}
	}
	return u.Aliases
}

type DailySeriesPoint struct {
	ReportDate     time.Time `json:"report_date" bson:"report_date"`
	DayNo          int       `json:"day_no" bson:"day_no"`
	Confirmed      float64   `json:"confirmed" bson:"confirmed"`
	Recovered      float64   `json:"recovered" bson:"recovered"`
	Deaths         float64   `json:"deaths" bson:"deaths"`
	Active         float64   `json:"active" bson:"active"`
	DailyConfirmed float64   `json:"daily_confirmed" bson:"daily_confirmed"`
	DailyRecovered float64   `json:"daily_recovered" bson:"daily_recovered"`
	DailyDeaths    float64   `json:"daily_deaths" bson:"daily_deaths"`
	DailyCases     float64   `json:"daily_cases" bson:"daily_cases"`
	TotalCases     float64   `json:"total_cases" bson:"total_cases"`
	DailyPer100k   float64   `json:"daily_per_100k" bson:"daily_per_100k"`
	TotalPer100k   float64   `json:"total_per_100k" bson:"total_per_100k"`
}

type Series struct {
	Unit        Unit               `json:"unit" bson:"unit"`
	Population  float64            `json:"population" bson:"population"`
	HasActive   bool               `json:"has_active" bson:"has_active"`
	Points      []DailySeriesPoint `json:"points" bson:"points"`
	GeneratedAt int64              `json:"generated_at" bson:"generated_at"`
}

// FirstDate returns the first day of the series, zero time if empty
func (s Series) FirstDate() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[0].ReportDate
}

// LastDate returns the last day of the series, zero time if empty
func (s Series) LastDate() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].ReportDate
}
