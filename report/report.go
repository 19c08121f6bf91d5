package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	gotaseries "github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/series"
)

const (
	logPrefix = "report"

	CountryFile = "country_case_counts.csv"
	StateFile   = "states_case_counts.csv"
)

var comparisonHeader = []string{
	"unit",
	"day_no",
	"report_date",
	"daily_cases",
	"total_cases",
	"daily_per_100k",
	"total_per_100k",
}

// ObservationSource returns the raw rows of the given keys at a level
type ObservationSource func(level schema.UnitLevel, keys []string) ([]schema.RawObservation, error)

// UnitError is the failure of one unit of a report
type UnitError struct {
	Unit schema.Unit
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Unit.Level, e.Unit.Name, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// Build reconstructs the series of every unit. A unit without usable
// population or rows is reported in the returned errors and left out.
func Build(source ObservationSource, units []schema.Unit, registry population.Registry, opts series.Options) ([]schema.Series, []error) {
	result := make([]schema.Series, 0, len(units))
	var errs []error

	for _, u := range units {
		p, err := population.For(u, registry)
		if err != nil {
			errs = append(errs, &UnitError{Unit: u, Err: err})
			continue
		}

		rows, err := source(u.Level, u.Keys())
		if err != nil {
			errs = append(errs, &UnitError{Unit: u, Err: err})
			continue
		}

		s := series.Reconstruct(rows, u, p, opts)
		log.WithFields(log.Fields{
			"prefix":     logPrefix,
			"unit":       u.Name,
			"rows":       len(rows),
			"points":     len(s.Points),
			"population": p,
		}).Debug("reconstruct series")
		result = append(result, s)
	}
	return result, errs
}

// FromRows serves observations from an in-memory table
func FromRows(rows []schema.RawObservation) ObservationSource {
	return func(level schema.UnitLevel, keys []string) ([]schema.RawObservation, error) {
		wanted := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			wanted[k] = struct{}{}
		}

		matched := make([]schema.RawObservation, 0)
		for _, r := range rows {
			if _, ok := wanted[r.Key(level)]; ok {
				matched = append(matched, r)
			}
		}
		return matched, nil
	}
}

func label(u schema.Unit) string {
	if u.Label != "" {
		return u.Label
	}
	return u.Name
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteComparison writes the series in long format, one line per unit
// and day. Rates of a zero population are written as +Inf or NaN.
func WriteComparison(w io.Writer, list []schema.Series) error {
	var (
		units, dates                       []string
		dayNos                             []int
		daily, total, dailyRate, totalRate []string
	)
	for _, s := range list {
		name := label(s.Unit)
		for _, p := range s.Points {
			units = append(units, name)
			dayNos = append(dayNos, p.DayNo)
			dates = append(dates, p.ReportDate.Format("2006-01-02"))
			daily = append(daily, formatFloat(p.DailyCases))
			total = append(total, formatFloat(p.TotalCases))
			dailyRate = append(dailyRate, formatFloat(p.DailyPer100k))
			totalRate = append(totalRate, formatFloat(p.TotalPer100k))
		}
	}

	df := dataframe.New(
		gotaseries.New(units, gotaseries.String, comparisonHeader[0]),
		gotaseries.New(dayNos, gotaseries.Int, comparisonHeader[1]),
		gotaseries.New(dates, gotaseries.String, comparisonHeader[2]),
		gotaseries.New(daily, gotaseries.String, comparisonHeader[3]),
		gotaseries.New(total, gotaseries.String, comparisonHeader[4]),
		gotaseries.New(dailyRate, gotaseries.String, comparisonHeader[5]),
		gotaseries.New(totalRate, gotaseries.String, comparisonHeader[6]),
	)
	return df.WriteCSV(w)
}

// WriteFile writes the comparison of a list of series into dir/name
func WriteFile(dir, name string, list []schema.Series) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := WriteComparison(f, list); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "path": path, "series": len(list)}).Info("write comparison")
	return path, nil
}
