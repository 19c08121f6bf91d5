package jhu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/casecounts/schema"
)

const (
	logPrefix  = "jhu"
	DefaultURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_daily_reports"

	reportDateLayout = "01-02-2006"
)

var (
	// FirstReportDate is the date of the first published daily report
	FirstReportDate = time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC)

	ErrReportNotFound   = fmt.Errorf("daily report not found")
	ErrUnexpectedStatus = fmt.Errorf("unexpected response status")
)

// Fetcher returns the raw csv of the daily report of a date
type Fetcher interface {
	Fetch(ctx context.Context, date time.Time) ([]byte, error)
}

type Client struct {
	url        string
	httpClient *http.Client
}

// ReportURL - url of the daily report csv of a date
func (c *Client) ReportURL(date time.Time) string {
	return fmt.Sprintf("%s/%s.csv", c.url, date.Format(reportDateLayout))
}

func (c *Client) Fetch(ctx context.Context, date time.Time) ([]byte, error) {
	url := c.ReportURL(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if nil != err {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": url, "error": err}).Error("get daily report")
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrReportNotFound
	default:
		return nil, fmt.Errorf("%w: %s %d", ErrUnexpectedStatus, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": url, "error": err}).Error("read daily report response")
		return nil, err
	}
	return data, nil
}

// Observations fetches and parses the daily report of a date
func (c *Client) Observations(ctx context.Context, date time.Time) ([]schema.RawObservation, error) {
	data, err := c.Fetch(ctx, date)
	if nil != err {
		return nil, err
	}
	return Parse(bytes.NewReader(data), date)
}

// FetchRange fetches every daily report from `from` to `to` one after
// another. Dates without a published report are skipped, any other
// failure stops the walk.
func FetchRange(ctx context.Context, f Fetcher, from, to time.Time, fn func(date time.Time, rows []schema.RawObservation) error) error {
	for d := day(from); !d.After(day(to)); d = d.AddDate(0, 0, 1) {
		data, err := f.Fetch(ctx, d)
		if errors.Is(err, ErrReportNotFound) {
			log.WithFields(log.Fields{"prefix": logPrefix, "date": d.Format(reportDateLayout)}).Info("daily report does not exist yet")
			continue
		}
		if nil != err {
			return err
		}

		rows, err := Parse(bytes.NewReader(data), d)
		if nil != err {
			return fmt.Errorf("parse daily report %s: %w", d.Format(reportDateLayout), err)
		}

		if err := fn(d, rows); nil != err {
			return err
		}
	}
	return nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// New - new daily report client, default url when url is empty
func New(url string, httpClient *http.Client) *Client {
	u := DefaultURL
	if url != "" {
		u = strings.TrimSuffix(url, "/")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		url:        u,
		httpClient: httpClient,
	}
}
