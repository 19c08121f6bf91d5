package schema

import "time"

const (
	PopulationSourceUS    = "us"
	PopulationSourceWorld = "world"
)

type PopulationFigure struct {
	ID         uint      `json:"-" gorm:"primary_key"`
	Source     string    `json:"source" gorm:"unique_index:population_source_unit"`
	UnitKey    string    `json:"unit_key" gorm:"unique_index:population_source_unit"`
	Name       string    `json:"name"`
	Population float64   `json:"population"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PopulationFigure) TableName() string {
	return "population"
}
