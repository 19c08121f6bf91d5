package series

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/bitmark-inc/casecounts/schema"
)

const (
	// ConfirmedThreshold is the minimum aggregate confirmed count for a
	// reporting date to be kept. Earlier dates are onset noise.
	ConfirmedThreshold = 10
	RollingWindow      = 5

	populationPerRate = 100000
)

// GapFill decides what cumulative counts a calendar day without any
// report receives.
type GapFill int

const (
	// GapFillZero fills missing days with zero cumulative counts. The day
	// after a gap then shows the whole cumulative total as new cases.
	GapFillZero GapFill = iota
	// GapFillForward carries the last reported cumulative counts.
	GapFillForward
)

var ErrUnknownGapFill = fmt.Errorf("unknown gap fill mode")

func (g GapFill) String() string {
	switch g {
	case GapFillForward:
		return "forward"
	default:
		return "zero"
	}
}

// ParseGapFill - parse configured gap fill mode, empty string is zero fill
func ParseGapFill(s string) (GapFill, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero":
		return GapFillZero, nil
	case "forward", "ffill":
		return GapFillForward, nil
	}
	return GapFillZero, fmt.Errorf("%w: %s", ErrUnknownGapFill, s)
}

type Options struct {
	GapFill GapFill
}

type counts struct {
	confirmed float64
	recovered float64
	deaths    float64
	active    float64
}

// dayRows holds the counts of every matching row of one report date
type dayRows struct {
	confirmed []float64
	recovered []float64
	deaths    []float64
	active    []float64
}

func (r *dayRows) sum() counts {
	return counts{
		confirmed: floats.Sum(r.confirmed),
		recovered: floats.Sum(r.recovered),
		deaths:    floats.Sum(r.deaths),
		active:    floats.Sum(r.active),
	}
}

// Reconstruct builds the gap-filled daily series of a unit from raw
// daily report rows. Rows of other units are ignored. An empty series
// is returned when no reporting date reaches the confirmed threshold.
func Reconstruct(rows []schema.RawObservation, unit schema.Unit, population float64, opts Options) schema.Series {
	s := schema.Series{
		Unit:       unit,
		Population: population,
		Points:     []schema.DailySeriesPoint{},
	}

	keys := make(map[string]struct{})
	for _, k := range unit.Keys() {
		keys[k] = struct{}{}
	}

	byDate := make(map[time.Time]*dayRows)
	for _, r := range rows {
		if _, ok := keys[r.Key(unit.Level)]; !ok {
			continue
		}
		d := Day(r.ReportDate)
		c, ok := byDate[d]
		if !ok {
			c = &dayRows{}
			byDate[d] = c
		}
		c.confirmed = append(c.confirmed, r.Confirmed)
		c.recovered = append(c.recovered, r.Recovered)
		c.deaths = append(c.deaths, r.Deaths)
		if r.HasActive {
			c.active = append(c.active, r.Active)
			s.HasActive = true
		}
	}

	totals := make(map[time.Time]counts, len(byDate))
	dates := make([]time.Time, 0, len(byDate))
	for d, c := range byDate {
		sum := c.sum()
		if sum.confirmed < ConfirmedThreshold {
			continue
		}
		totals[d] = sum
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return s
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	first := dates[0].AddDate(0, 0, -1)
	last := dates[len(dates)-1]

	var prev counts
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		cur := counts{}
		if c, ok := totals[d]; ok {
			cur = c
		} else if opts.GapFill == GapFillForward {
			cur = prev
		}
		s.Points = append(s.Points, schema.DailySeriesPoint{
			ReportDate: d,
			DayNo:      DaysBetween(first, d),
			Confirmed:  cur.confirmed,
			Recovered:  cur.recovered,
			Deaths:     cur.deaths,
			Active:     cur.active,
		})
		prev = cur
	}

	unroll(s.Points)
	smooth(s.Points)
	normalise(s.Points, population)

	return s
}

// unroll turns cumulative counts into daily counts, first day and
// decreasing counts give zero
func unroll(points []schema.DailySeriesPoint) {
	for i := 1; i < len(points); i++ {
		points[i].DailyConfirmed = clampedDelta(points[i].Confirmed, points[i-1].Confirmed)
		points[i].DailyRecovered = clampedDelta(points[i].Recovered, points[i-1].Recovered)
		points[i].DailyDeaths = clampedDelta(points[i].Deaths, points[i-1].Deaths)
	}
}

func clampedDelta(cur, prev float64) float64 {
	if d := cur - prev; d > 0 {
		return d
	}
	return 0
}

func smooth(points []schema.DailySeriesPoint) {
	daily := make([]float64, len(points))
	total := make([]float64, len(points))
	for i, p := range points {
		daily[i] = p.DailyConfirmed
		total[i] = p.Confirmed
	}

	daily = TrailingMean(daily, RollingWindow)
	total = TrailingMean(total, RollingWindow)
	for i := range points {
		points[i].DailyCases = daily[i]
		points[i].TotalCases = total[i]
	}
}

// zero population is passed through and yields Inf or NaN rates
func normalise(points []schema.DailySeriesPoint, population float64) {
	scale := population / populationPerRate
	for i := range points {
		points[i].DailyPer100k = points[i].DailyCases / scale
		points[i].TotalPer100k = points[i].TotalCases / scale
	}
}

// TrailingMean returns the mean of each value and up to window-1
// preceding values
func TrailingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	result := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		result[i] = stat.Mean(values[start:i+1], nil)
	}
	return result
}

// Day truncates t to midnight UTC of its calendar date
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween - number of calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
