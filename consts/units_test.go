package consts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/casecounts/consts"
	"github.com/bitmark-inc/casecounts/schema"
)

func TestFindUnit(t *testing.T) {
	mapping := map[string]string{
		"CA":         "California",
		"New York":   "New York",
		"Washington": "Washington",
		"FL":         "Florida",
	}

	for key, value := range mapping {
		actual, err := consts.FindUnit(schema.LevelState, key)
		assert.NoError(t, err, "wrong find unit")
		assert.Equal(t, value, actual.Name, "wrong unit")
	}

	china, err := consts.FindUnit(schema.LevelCountry, "China")
	assert.NoError(t, err, "wrong find unit")
	assert.Equal(t, []string{"China", "Mainland China"}, china.Keys(), "wrong china aliases")
	assert.Equal(t, float64(consts.WuhanMetroPopulation), china.PopulationOverride, "wrong china population")

	_, err = consts.FindUnit(schema.LevelState, "Atlantis")
	assert.Error(t, err, "expect unknown unit error")
}
