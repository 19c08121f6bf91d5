package population

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/casecounts/schema"
)

const (
	logPrefix = "population"

	DefaultUSNameColumn       = "NAME"
	DefaultUSValueColumn      = "POPESTIMATE2019"
	DefaultWorldNameColumn    = "Region, subregion, country or area *"
	DefaultWorldTypeColumn    = "Type"
	DefaultWorldValueColumn   = "2019"
	worldCountryType          = "Country/Area"
	worldPopulationMultiplier = 1000
)

var (
	ErrMissingColumn = fmt.Errorf("missing column")
	ErrInvalidValue  = fmt.Errorf("invalid population value")
)

// WorldAliases maps names of the world table onto the country names
// used by the daily reports
var WorldAliases = map[string]string{
	"United States of America":        "US",
	"China, Taiwan Province of China": "Taiwan*",
	"Republic of Korea":               "Korea, South",
	"Iran (Islamic Republic of)":      "Iran",
	"Russian Federation":              "Russia",
	"Viet Nam":                        "Vietnam",
}

type Columns struct {
	Name  string
	Type  string
	Value string
}

// LoadUS reads a state population table, one row per state
func LoadUS(r io.Reader, cols Columns) (*Table, error) {
	if cols.Name == "" {
		cols.Name = DefaultUSNameColumn
	}
	if cols.Value == "" {
		cols.Value = DefaultUSValueColumn
	}

	t := NewTable(schema.PopulationSourceUS, nil)
	df, err := readFrame(r, cols)
	if err == errNoRows {
		return t, nil
	}
	if err != nil {
		return nil, err
	}

	eachFigure(df, cols, func(name string, value float64) {
		t.Add(schema.PopulationFigure{Name: name, Population: value})
	})
	return t, nil
}

// LoadWorld reads a world population table given in thousands. Region
// and other aggregate rows are excluded when the table has a type
// column.
func LoadWorld(r io.Reader, cols Columns) (*Table, error) {
	if cols.Name == "" {
		cols.Name = DefaultWorldNameColumn
	}
	if cols.Type == "" {
		cols.Type = DefaultWorldTypeColumn
	}
	if cols.Value == "" {
		cols.Value = DefaultWorldValueColumn
	}

	t := NewTable(schema.PopulationSourceWorld, nil)
	df, err := readFrame(r, cols)
	if err == errNoRows {
		return t, nil
	}
	if err != nil {
		return nil, err
	}

	if hasColumn(df, cols.Type) {
		df = df.Filter(dataframe.F{
			Colname:    cols.Type,
			Comparator: series.In,
			Comparando: []string{worldCountryType, ""},
		})
		if df.Err != nil {
			return nil, df.Err
		}
	}

	eachFigure(df, cols, func(name string, value float64) {
		if alias, ok := WorldAliases[name]; ok {
			name = alias
		}
		t.Add(schema.PopulationFigure{Name: name, Population: value * worldPopulationMultiplier})
	})
	return t, nil
}

var errNoRows = fmt.Errorf("no population rows")

// readFrame skips any preamble until the row holding the name column
// and loads the rest as a string table. The preamble rows have other
// widths than the table, so the records are read leniently first and
// padded to the header width.
func readFrame(r io.Reader, cols Columns) (dataframe.DataFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	start := -1
	var header []string
	for i, record := range records {
		header = trimHeader(record)
		if indexOf(header, cols.Name) >= 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrMissingColumn, cols.Name)
	}
	if indexOf(header, cols.Value) < 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrMissingColumn, cols.Value)
	}

	table := [][]string{header}
	for _, record := range records[start+1:] {
		row := make([]string, len(header))
		copy(row, record)
		table = append(table, row)
	}
	if len(table) == 1 {
		return dataframe.DataFrame{}, errNoRows
	}

	df := dataframe.LoadRecords(table,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	return df, df.Err
}

// eachFigure calls fn for every row with a name and a valid value
func eachFigure(df dataframe.DataFrame, cols Columns, fn func(name string, value float64)) {
	names := df.Col(cols.Name).Records()
	values := df.Col(cols.Value).Records()
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		value, err := parseValue(values[i])
		if err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "name": name, "value": values[i]}).Warn("skip population row")
			continue
		}
		fn(name, value)
	}
}

func trimHeader(record []string) []string {
	header := make([]string, len(record))
	for i, h := range record {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return header
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	return name != "" && indexOf(df.Names(), name) >= 0
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// parseValue accepts thousands separated by commas or spaces
func parseValue(s string) (float64, error) {
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, ErrInvalidValue
	}
	return v, nil
}
