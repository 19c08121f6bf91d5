package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/casecounts/external/jhu"
)

type fakeFetcher struct {
	reports map[string][]byte
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, date time.Time) ([]byte, error) {
	f.calls++
	body, ok := f.reports[date.Format(dateLayout)]
	if !ok {
		return nil, jhu.ErrReportNotFound
	}
	return body, nil
}

type CacheTestSuite struct {
	suite.Suite
	cache *ReportCache
}

func (s *CacheTestSuite) SetupTest() {
	c, err := Open(filepath.Join(s.T().TempDir(), "reports.db"))
	s.Require().NoError(err)
	s.cache = c
}

func (s *CacheTestSuite) TearDownTest() {
	s.NoError(s.cache.Close())
}

func (s *CacheTestSuite) TestGetPut() {
	ctx := context.Background()
	date := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)

	_, ok, err := s.cache.Get(ctx, date)
	s.NoError(err)
	s.False(ok, "expect cache miss")

	s.NoError(s.cache.Put(ctx, date, []byte("a,b\n")))
	s.NoError(s.cache.Put(ctx, date, []byte("a,b,c\n")))

	body, ok, err := s.cache.Get(ctx, date)
	s.NoError(err)
	s.True(ok, "expect cache hit")
	s.Equal("a,b,c\n", string(body), "cached body should be replaced")

	n, err := s.cache.Count(ctx)
	s.NoError(err)
	s.Equal(1, n)
}

func (s *CacheTestSuite) TestFetcher() {
	ctx := context.Background()
	scope := tally.NewTestScope("", nil)
	next := &fakeFetcher{reports: map[string][]byte{"2020-03-01": []byte("Country_Region,Confirmed\n")}}
	f := NewFetcher(s.cache, next, scope)

	date := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		body, err := f.Fetch(ctx, date)
		s.NoError(err)
		s.Equal("Country_Region,Confirmed\n", string(body))
	}
	s.Equal(1, next.calls, "cached report should not be fetched again")

	_, err := f.Fetch(ctx, date.AddDate(0, 0, 1))
	s.True(errors.Is(err, jhu.ErrReportNotFound), "expect report not found")
	_, err = f.Fetch(ctx, date.AddDate(0, 0, 1))
	s.True(errors.Is(err, jhu.ErrReportNotFound), "expect report not found")
	s.Equal(3, next.calls, "missing report should not be cached")

	counters := scope.Snapshot().Counters()
	s.Equal(int64(2), counters["reports.cached+"].Value())
	s.Equal(int64(1), counters["reports.fetched+"].Value())
}

func (s *CacheTestSuite) TestFetcherRefresh() {
	ctx := context.Background()
	mar1 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	mar2 := mar1.AddDate(0, 0, 1)

	s.NoError(s.cache.Put(ctx, mar1, []byte("old 1\n")))
	s.NoError(s.cache.Put(ctx, mar2, []byte("old 2\n")))

	next := &fakeFetcher{reports: map[string][]byte{
		"2020-03-01": []byte("new 1\n"),
		"2020-03-02": []byte("new 2\n"),
	}}
	f := NewFetcher(s.cache, next, nil)
	f.RefreshFrom(mar2)

	body, err := f.Fetch(ctx, mar1)
	s.NoError(err)
	s.Equal("old 1\n", string(body), "report before the refresh date should come from cache")

	body, err = f.Fetch(ctx, mar2)
	s.NoError(err)
	s.Equal("new 2\n", string(body), "report from the refresh date should be fetched again")
	s.Equal(1, next.calls)

	cached, ok, err := s.cache.Get(ctx, mar2)
	s.NoError(err)
	s.True(ok)
	s.Equal("new 2\n", string(cached), "refreshed report should replace the cached one")

	n, err := s.cache.Count(ctx)
	s.NoError(err)
	s.Equal(2, n)
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}
