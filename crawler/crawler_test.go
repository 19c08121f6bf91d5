package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/casecounts/external/jhu"
	"github.com/bitmark-inc/casecounts/mocks"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/store"
)

const report = "Province_State,Country_Region,Confirmed,Deaths,Recovered,Active\n" +
	"California,US,53,0,6,47\n" +
	"New York,US,22,0,0,22\n"

var (
	mar1 = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	mar2 = time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)
	mar3 = time.Date(2020, 3, 3, 0, 0, 0, 0, time.UTC)
)

type fakeFetcher map[time.Time]string

func (f fakeFetcher) Fetch(_ context.Context, date time.Time) ([]byte, error) {
	body, ok := f[date]
	if !ok {
		return nil, jhu.ErrReportNotFound
	}
	return []byte(body), nil
}

func newTestCrawler(s store.ObservationStore, f jhu.Fetcher, opts Options, scope tally.Scope) *reportCrawler {
	c := NewReportCrawler(s, f, opts, scope).(*reportCrawler)
	c.now = func() time.Time { return mar3.Add(15 * time.Hour) }
	return c
}

func TestRun(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	var runIDs []string
	m.EXPECT().ReplaceObservations(mar1, gomock.Any()).DoAndReturn(func(_ time.Time, rows []schema.RawObservation) (int, error) {
		assert.Len(t, rows, 2)
		runIDs = append(runIDs, rows[0].RunID, rows[1].RunID)
		return len(rows), nil
	}).Times(1)
	m.EXPECT().ReplaceObservations(mar3, gomock.Any()).Return(2, nil).Times(1)

	scope := tally.NewTestScope("", nil)
	c := newTestCrawler(m, fakeFetcher{mar1: report, mar3: report}, Options{From: mar1}, scope)

	assert.NoError(t, c.Run(context.Background()))
	assert.NotEmpty(t, runIDs[0], "rows should be stamped with the run id")
	assert.Equal(t, runIDs[0], runIDs[1])

	counters := scope.Snapshot().Counters()
	assert.Equal(t, int64(4), counters["observations.stored+"].Value())
	assert.Equal(t, int64(1), counters["reports.missing+"].Value())
}

func TestRunResume(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	m.EXPECT().LatestObservationDate().Return(mar2, nil).Times(1)
	m.EXPECT().ReplaceObservations(mar2, gomock.Any()).Return(2, nil).Times(1)
	m.EXPECT().ReplaceObservations(mar3, gomock.Any()).Return(2, nil).Times(1)

	c := newTestCrawler(m, fakeFetcher{mar1: report, mar2: report, mar3: report}, Options{From: mar1, Resume: true}, nil)
	assert.NoError(t, c.Run(context.Background()))
}

func TestRunResumeEmptyStore(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	m.EXPECT().LatestObservationDate().Return(time.Time{}, store.ErrNoObservation).Times(1)
	m.EXPECT().ReplaceObservations(gomock.Any(), gomock.Any()).Return(2, nil).Times(3)

	c := newTestCrawler(m, fakeFetcher{mar1: report, mar2: report, mar3: report}, Options{From: mar1, Resume: true}, nil)
	assert.NoError(t, c.Run(context.Background()))
}

func TestRunStopsOnStoreError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dbErr := errors.New("db down")
	m := mocks.NewMockMongoStore(ctl)
	m.EXPECT().ReplaceObservations(mar1, gomock.Any()).Return(0, dbErr).Times(1)

	c := newTestCrawler(m, fakeFetcher{mar1: report, mar2: report}, Options{From: mar1}, nil)
	assert.Equal(t, dbErr, c.Run(context.Background()))
}

func TestNewReportCrawlerDefaultStart(t *testing.T) {
	c := NewReportCrawler(nil, fakeFetcher{}, Options{}, nil).(*reportCrawler)
	assert.Equal(t, jhu.FirstReportDate, c.opts.From)
}
