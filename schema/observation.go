package schema

import "time"

const (
	ObservationCollection = "observation"
)

type UnitLevel string

const (
	LevelState   UnitLevel = "state"
	LevelCountry UnitLevel = "country"
)

// RawObservation - one row of a daily report after column normalisation
type RawObservation struct {
	ProvinceState string    `json:"province_state" bson:"province_state"`
	CountryRegion string    `json:"country_region" bson:"country_region"`
	LastUpdate    string    `json:"last_update" bson:"last_update"`
	Latitude      float64   `json:"lat" bson:"lat"`
	Longitude     float64   `json:"long" bson:"long"`
	Confirmed     float64   `json:"confirmed" bson:"confirmed"`
	Recovered     float64   `json:"recovered" bson:"recovered"`
	Deaths        float64   `json:"deaths" bson:"deaths"`
	Active        float64   `json:"active" bson:"active"`
	HasActive     bool      `json:"has_active" bson:"has_active"`
	ReportDate    time.Time `json:"report_date" bson:"report_date"`
	RunID         string    `json:"run_id" bson:"run_id"`
}

// Key returns the grouping key of the observation for the given level
func (o RawObservation) Key(level UnitLevel) string {
	if level == LevelState {
		return o.ProvinceState
	}
	return o.CountryRegion
}
