package jhu

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/bitmark-inc/casecounts/schema"
)

// canonical column names of the daily report
const (
	ColProvinceState = "Province_State"
	ColCountryRegion = "Country_Region"
	ColLastUpdate    = "Last_Update"
	ColLatitude      = "Lat"
	ColLongitude     = "Long_"
	ColConfirmed     = "Confirmed"
	ColRecovered     = "Recovered"
	ColDeaths        = "Deaths"
	ColActive        = "Active"
)

var ErrInvalidReport = fmt.Errorf("invalid daily report")

// LegacyColumns maps the column names used before 2020-03-22 onto the
// canonical names
var LegacyColumns = map[string]string{
	"Province/State": ColProvinceState,
	"Country/Region": ColCountryRegion,
	"Last Update":    ColLastUpdate,
	"Latitude":       ColLatitude,
	"Longitude":      ColLongitude,
}

// frame is a loaded report with canonical column names
type frame struct {
	df      dataframe.DataFrame
	columns map[string][]string
}

// normalizeNames maps legacy names onto the canonical ones. A name
// already taken keeps its original spelling.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, len(names))
	for i, name := range names {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if canonical, ok := LegacyColumns[name]; ok && !seen[canonical] {
			name = canonical
		}
		seen[name] = true
		result[i] = name
	}
	return result
}

func (f *frame) has(col string) bool {
	for _, name := range f.df.Names() {
		if name == col {
			return true
		}
	}
	return false
}

func (f *frame) column(col string) []string {
	values, ok := f.columns[col]
	if !ok {
		if f.has(col) {
			values = f.df.Col(col).Records()
		}
		f.columns[col] = values
	}
	return values
}

func (f *frame) text(row int, col string) string {
	values := f.column(col)
	if row >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[row])
}

func (f *frame) number(row int, col string) (float64, error) {
	s := f.text(row, col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s value %q", ErrInvalidReport, col, s)
	}
	return v, nil
}

// Parse reads a daily report csv. Rows of both the legacy and the
// current column layout are normalised onto schema.RawObservation and
// stamped with the report date.
func Parse(r io.Reader, date time.Time) ([]schema.RawObservation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// a report without any data row is empty, not invalid
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\ufeff")))
	if len(trimmed) == 0 || !bytes.ContainsRune(trimmed, '\n') {
		return []schema.RawObservation{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(trimmed),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
		dataframe.WithLazyQuotes(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReport, df.Err)
	}
	if err := df.SetNames(normalizeNames(df.Names())...); err != nil {
		return nil, err
	}

	f := &frame{df: df, columns: make(map[string][]string)}
	if !f.has(ColCountryRegion) || !f.has(ColConfirmed) {
		return nil, fmt.Errorf("%w: missing %s or %s column", ErrInvalidReport, ColCountryRegion, ColConfirmed)
	}
	hasActive := f.has(ColActive)
	reportDate := day(date)

	rows := make([]schema.RawObservation, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		o, err := f.observation(i)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		o.HasActive = hasActive
		o.ReportDate = reportDate
		rows = append(rows, o)
	}
	return rows, nil
}

func (f *frame) observation(row int) (schema.RawObservation, error) {
	o := schema.RawObservation{
		ProvinceState: f.text(row, ColProvinceState),
		CountryRegion: f.text(row, ColCountryRegion),
		LastUpdate:    f.text(row, ColLastUpdate),
	}

	var err error
	numbers := []struct {
		col string
		dst *float64
	}{
		{ColLatitude, &o.Latitude},
		{ColLongitude, &o.Longitude},
		{ColConfirmed, &o.Confirmed},
		{ColRecovered, &o.Recovered},
		{ColDeaths, &o.Deaths},
		{ColActive, &o.Active},
	}
	for _, n := range numbers {
		if *n.dst, err = f.number(row, n.col); err != nil {
			return o, err
		}
	}
	return o, nil
}
