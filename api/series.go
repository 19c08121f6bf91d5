package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/casecounts/consts"
	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/series"
	"github.com/bitmark-inc/casecounts/store"
)

// rate is a per-100k figure. A zero population gives Inf or NaN rates
// which have no json encoding, they are written as null.
type rate float64

func (r rate) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

type pointResponse struct {
	ReportDate     time.Time `json:"report_date"`
	DayNo          int       `json:"day_no"`
	Confirmed      float64   `json:"confirmed"`
	Recovered      float64   `json:"recovered"`
	Deaths         float64   `json:"deaths"`
	Active         float64   `json:"active"`
	DailyConfirmed float64   `json:"daily_confirmed"`
	DailyRecovered float64   `json:"daily_recovered"`
	DailyDeaths    float64   `json:"daily_deaths"`
	DailyCases     float64   `json:"daily_cases"`
	TotalCases     float64   `json:"total_cases"`
	DailyPer100k   rate      `json:"daily_per_100k"`
	TotalPer100k   rate      `json:"total_per_100k"`
}

type summaryResponse struct {
	Days            int       `json:"days"`
	LastDate        time.Time `json:"last_date"`
	Confirmed       float64   `json:"confirmed"`
	DailyCases      float64   `json:"daily_cases"`
	DailyPer100k    rate      `json:"daily_per_100k"`
	TotalPer100k    rate      `json:"total_per_100k"`
	DailyChangeRate rate      `json:"daily_change_rate"`
	PeakDailyCases  float64   `json:"peak_daily_cases"`
	PeakDayNo       int       `json:"peak_day_no"`
}

type seriesResponse struct {
	Unit       schema.Unit     `json:"unit"`
	Population float64         `json:"population"`
	HasActive  bool            `json:"has_active"`
	Summary    summaryResponse `json:"summary"`
	Points     []pointResponse `json:"points"`
}

func newSeriesResponse(s schema.Series) seriesResponse {
	sum := series.Summarize(s)
	resp := seriesResponse{
		Unit:       s.Unit,
		Population: s.Population,
		HasActive:  s.HasActive,
		Summary: summaryResponse{
			Days:            sum.Days,
			LastDate:        sum.LastDate,
			Confirmed:       sum.Confirmed,
			DailyCases:      sum.DailyCases,
			DailyPer100k:    rate(sum.DailyPer100k),
			TotalPer100k:    rate(sum.TotalPer100k),
			DailyChangeRate: rate(sum.DailyChangeRate),
			PeakDailyCases:  sum.PeakDailyCases,
			PeakDayNo:       sum.PeakDayNo,
		},
		Points: make([]pointResponse, len(s.Points)),
	}

	for i, p := range s.Points {
		resp.Points[i] = pointResponse{
			ReportDate:     p.ReportDate,
			DayNo:          p.DayNo,
			Confirmed:      p.Confirmed,
			Recovered:      p.Recovered,
			Deaths:         p.Deaths,
			Active:         p.Active,
			DailyConfirmed: p.DailyConfirmed,
			DailyRecovered: p.DailyRecovered,
			DailyDeaths:    p.DailyDeaths,
			DailyCases:     p.DailyCases,
			TotalCases:     p.TotalCases,
			DailyPer100k:   rate(p.DailyPer100k),
			TotalPer100k:   rate(p.TotalPer100k),
		}
	}
	return resp
}

func (s *Server) getUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"countries": consts.DefaultCountries,
		"states":    consts.DefaultStates,
	})
}

func parseLevel(v string) (schema.UnitLevel, bool) {
	switch l := schema.UnitLevel(v); l {
	case schema.LevelCountry, schema.LevelState:
		return l, true
	}
	return "", false
}

// unitParam resolves the unit of the path. It aborts the request and
// returns false when the unit is not known.
func unitParam(c *gin.Context) (schema.Unit, bool) {
	level, ok := parseLevel(c.Param("level"))
	if !ok {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return schema.Unit{}, false
	}

	u, err := consts.FindUnit(level, c.Param("unit"))
	if err != nil {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownUnit, err)
		return schema.Unit{}, false
	}
	return u, true
}

// getSeries reconstructs the series of a unit from the stored observations
func (s *Server) getSeries(c *gin.Context) {
	u, ok := unitParam(c)
	if !ok {
		return
	}

	opts := s.opts
	if v := c.Query("gap_fill"); v != "" {
		g, err := series.ParseGapFill(v)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		opts.GapFill = g
	}

	p, err := population.For(u, s.registry)
	switch {
	case errors.Is(err, population.ErrPopulationNotFound):
		abortWithEncoding(c, http.StatusNotFound, errorPopulationNotFound, err)
		return
	case errors.Is(err, population.ErrPopulationAmbiguous):
		abortWithEncoding(c, http.StatusConflict, errorPopulationAmbiguous, err)
		return
	case shouldInterupt(err, c):
		return
	}

	rows, err := s.mongoStore.Observations(u.Level, u.Keys())
	if shouldInterupt(err, c) {
		return
	}

	result := series.Reconstruct(rows, u, p, opts)
	if len(result.Points) > 0 && opts.GapFill == s.opts.GapFill {
		if err := s.mongoStore.SaveSeries(result); err != nil {
			log.WithField("unit", u.Name).Warnf("save series: %s", err)
		}
	}

	c.JSON(http.StatusOK, newSeriesResponse(result))
}

// getStoredSeries returns the last series saved for a unit
func (s *Server) getStoredSeries(c *gin.Context) {
	u, ok := unitParam(c)
	if !ok {
		return
	}

	result, err := s.mongoStore.GetSeries(u.Level, u.Name)
	if err == store.ErrNoSeries {
		abortWithEncoding(c, http.StatusNotFound, errorSeriesNotFound)
		return
	}
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, newSeriesResponse(*result))
}
