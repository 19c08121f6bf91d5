package consts

import (
	"fmt"

	"github.com/bitmark-inc/casecounts/schema"
)

// WuhanMetroPopulation replaces the national population of China, the
// comparison is made against the outbreak region.
const WuhanMetroPopulation = 1900000

var (
	DefaultCountries []schema.Unit
	DefaultStates    []schema.Unit
)

func init() {
	DefaultCountries = []schema.Unit{
		{Name: "US", Label: "USA", Level: schema.LevelCountry},
		{
			Name:               "China",
			Label:              "China",
			Level:              schema.LevelCountry,
			Aliases:            []string{"China", "Mainland China"},
			PopulationOverride: WuhanMetroPopulation,
		},
		{Name: "Italy", Label: "Italy", Level: schema.LevelCountry},
		{Name: "Germany", Label: "Germany", Level: schema.LevelCountry},
		{Name: "Sweden", Label: "Sweden", Level: schema.LevelCountry},
		{Name: "Turkey", Label: "Turkiye", Level: schema.LevelCountry},
	}

	DefaultStates = []schema.Unit{
		{Name: "California", Label: "CA", Level: schema.LevelState},
		{Name: "New York", Label: "NY", Level: schema.LevelState},
		{Name: "Washington", Label: "WA", Level: schema.LevelState},
		{Name: "Oregon", Label: "OR", Level: schema.LevelState},
		{Name: "Pennsylvania", Label: "PA", Level: schema.LevelState},
		{Name: "Nevada", Label: "NV", Level: schema.LevelState},
		{Name: "Arizona", Label: "AZ", Level: schema.LevelState},
		{Name: "Ohio", Label: "OH", Level: schema.LevelState},
		{Name: "Massachusetts", Label: "MA", Level: schema.LevelState},
		{Name: "Florida", Label: "FL", Level: schema.LevelState},
	}
}

// FindUnit - look up a default unit by level and name or label
func FindUnit(level schema.UnitLevel, name string) (schema.Unit, error) {
	units := DefaultCountries
	if level == schema.LevelState {
		units = DefaultStates
	}

	for _, u := range units {
		if u.Name == name || u.Label == name {
			return u, nil
		}
	}
	return schema.Unit{}, fmt.Errorf("%s %s not exist", level, name)
}
