package cache

import (
	"context"
	"database/sql"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	_ "modernc.org/sqlite"

	"github.com/bitmark-inc/casecounts/external/jhu"
)

const (
	logPrefix  = "cache"
	dateLayout = "2006-01-02"
)

// ReportCache keeps the raw csv of daily reports in a sqlite file so a
// rerun does not download published reports again
type ReportCache struct {
	db *sql.DB
}

func Open(path string) (*ReportCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	c := &ReportCache{db: db}
	if err := c.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *ReportCache) Close() error {
	return c.db.Close()
}

func (c *ReportCache) migrate() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS daily_report (
		report_date TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);`)
	return err
}

// Get returns the cached report of a date, ok is false on a miss
func (c *ReportCache) Get(ctx context.Context, date time.Time) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx, `SELECT body FROM daily_report WHERE report_date = ?`, date.Format(dateLayout)).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *ReportCache) Put(ctx context.Context, date time.Time, body []byte) error {
	_, err := c.db.ExecContext(ctx, `INSERT INTO daily_report(report_date, body, fetched_at) VALUES(?, ?, ?)
		ON CONFLICT(report_date) DO UPDATE SET body=excluded.body, fetched_at=excluded.fetched_at`,
		date.Format(dateLayout), body, time.Now().UTC())
	return err
}

// Count - number of cached reports
func (c *ReportCache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_report`).Scan(&n)
	return n, err
}

// Fetcher serves reports from the cache and falls back to the next
// fetcher. Missing reports are never cached, they may be published
// later.
type Fetcher struct {
	cache *ReportCache
	next  jhu.Fetcher
	hits  tally.Counter
	miss  tally.Counter

	refreshFrom time.Time
}

func NewFetcher(c *ReportCache, next jhu.Fetcher, scope tally.Scope) *Fetcher {
	if scope == nil {
		scope = tally.NoopScope
	}
	return &Fetcher{
		cache: c,
		next:  next,
		hits:  scope.Counter("reports.cached"),
		miss:  scope.Counter("reports.fetched"),
	}
}

// RefreshFrom makes reports dated on or after date skip the cache. The
// upstream revises recent reports after publication.
func (f *Fetcher) RefreshFrom(date time.Time) {
	f.refreshFrom = date
}

func (f *Fetcher) refresh(date time.Time) bool {
	return !f.refreshFrom.IsZero() && !date.Before(f.refreshFrom)
}

func (f *Fetcher) Fetch(ctx context.Context, date time.Time) ([]byte, error) {
	if !f.refresh(date) {
		body, ok, err := f.cache.Get(ctx, date)
		if err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "date": date.Format(dateLayout), "error": err}).Warn("read cached report")
		}
		if ok {
			f.hits.Inc(1)
			return body, nil
		}
	}

	body, err := f.next.Fetch(ctx, date)
	if err != nil {
		return nil, err
	}
	f.miss.Inc(1)

	if err := f.cache.Put(ctx, date, body); err != nil {
		log.WithFields(log.Fields{"prefix": logPrefix, "date": date.Format(dateLayout), "error": err}).Warn("cache report")
	}
	return body, nil
}
