package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/casecounts/consts"
	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/series"
)

var mar1 = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)

func rows() []schema.RawObservation {
	return []schema.RawObservation{
		{CountryRegion: "Italy", Confirmed: 1694, ReportDate: mar1},
		{CountryRegion: "Italy", Confirmed: 2036, ReportDate: mar1.AddDate(0, 0, 1)},
		{CountryRegion: "Mainland China", ProvinceState: "Hubei", Confirmed: 66907, ReportDate: mar1},
		{CountryRegion: "Mainland China", ProvinceState: "Guangdong", Confirmed: 1349, ReportDate: mar1},
		{CountryRegion: "US", ProvinceState: "California", Confirmed: 12, ReportDate: mar1},
	}
}

func registry() population.Registry {
	return population.Tables{
		US: population.NewTable(schema.PopulationSourceUS, []schema.PopulationFigure{
			{Name: "California", Population: 39512223},
		}),
		World: population.NewTable(schema.PopulationSourceWorld, []schema.PopulationFigure{
			{Name: "Italy", Population: 60550092},
			{Name: "China", Population: 1433783686},
		}),
	}
}

func TestBuild(t *testing.T) {
	china, _ := consts.FindUnit(schema.LevelCountry, "China")
	italy, _ := consts.FindUnit(schema.LevelCountry, "Italy")
	sweden, _ := consts.FindUnit(schema.LevelCountry, "Sweden")

	list, errs := Build(FromRows(rows()), []schema.Unit{china, italy, sweden}, registry(), series.Options{})

	assert.Len(t, list, 2, "wrong number of series")
	assert.Equal(t, float64(consts.WuhanMetroPopulation), list[0].Population, "china should use wuhan metro population")
	assert.Equal(t, float64(68256), list[0].Points[1].Confirmed, "wrong china confirmed")
	assert.Equal(t, float64(60550092), list[1].Population, "wrong italy population")

	if assert.Len(t, errs, 1, "sweden has no population") {
		var unitErr *UnitError
		assert.True(t, errors.As(errs[0], &unitErr))
		assert.Equal(t, "Sweden", unitErr.Unit.Name)
		assert.True(t, errors.Is(errs[0], population.ErrPopulationNotFound))
	}
}

func TestBuildSourceError(t *testing.T) {
	italy, _ := consts.FindUnit(schema.LevelCountry, "Italy")
	failing := func(schema.UnitLevel, []string) ([]schema.RawObservation, error) {
		return nil, errors.New("db down")
	}

	list, errs := Build(failing, []schema.Unit{italy}, registry(), series.Options{})
	assert.Empty(t, list)
	assert.Len(t, errs, 1)
}

func TestFromRows(t *testing.T) {
	source := FromRows(rows())

	matched, err := source(schema.LevelState, []string{"California", "Hubei"})
	assert.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestWriteComparison(t *testing.T) {
	list := []schema.Series{
		{
			Unit: schema.Unit{Name: "US", Label: "USA"},
			Points: []schema.DailySeriesPoint{
				{ReportDate: mar1, DayNo: 0},
				{ReportDate: mar1.AddDate(0, 0, 1), DayNo: 1, DailyCases: 7.5, TotalCases: 7.5, DailyPer100k: 0.25, TotalPer100k: 0.25},
			},
		},
		{Unit: schema.Unit{Name: "Sweden"}},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteComparison(&buf, list))

	expected := "unit,day_no,report_date,daily_cases,total_cases,daily_per_100k,total_per_100k\n" +
		"USA,0,2020-03-01,0,0,0,0\n" +
		"USA,1,2020-03-02,7.5,7.5,0.25,0.25\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteComparisonZeroPopulation(t *testing.T) {
	list := []schema.Series{
		series.Reconstruct([]schema.RawObservation{
			{CountryRegion: "Italy", Confirmed: 10, ReportDate: mar1},
		}, schema.Unit{Name: "Italy", Level: schema.LevelCountry}, 0, series.Options{}),
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteComparison(&buf, list))

	expected := "unit,day_no,report_date,daily_cases,total_cases,daily_per_100k,total_per_100k\n" +
		"Italy,0,2020-02-29,0,0,NaN,NaN\n" +
		"Italy,1,2020-03-01,5,5,+Inf,+Inf\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteComparisonEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteComparison(&buf, nil))
	assert.Equal(t, "unit,day_no,report_date,daily_cases,total_cases,daily_per_100k,total_per_100k\n", buf.String())
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	comparisons := []Comparison{
		{File: CountryFile, Units: consts.DefaultCountries},
		{File: StateFile, Units: consts.DefaultStates},
	}

	paths, err := Generate(FromRows(rows()), registry(), series.Options{}, dir, comparisons)
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, CountryFile), filepath.Join(dir, StateFile)}, paths)

	data, err := os.ReadFile(paths[0])
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "China,1,2020-03-01,"), "china should be exported")
	assert.True(t, strings.Contains(string(data), "Italy,1,2020-03-01,"), "italy should be exported")

	data, err = os.ReadFile(paths[1])
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "CA,1,2020-03-01,"), "california should be exported")
}
