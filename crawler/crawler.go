package crawler

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/casecounts/external/jhu"
	"github.com/bitmark-inc/casecounts/schema"
	"github.com/bitmark-inc/casecounts/store"
)

const logPrefix = "cron"

type Cron interface {
	Run(ctx context.Context) error
}

type Options struct {
	// From is the first report date to crawl
	From time.Time
	// Resume starts from the latest stored report date when later than From
	Resume bool
}

// countingFetcher counts reports that are not published
type countingFetcher struct {
	next    jhu.Fetcher
	missing tally.Counter
}

func (f countingFetcher) Fetch(ctx context.Context, date time.Time) ([]byte, error) {
	data, err := f.next.Fetch(ctx, date)
	if errors.Is(err, jhu.ErrReportNotFound) {
		f.missing.Inc(1)
	}
	return data, err
}

type reportCrawler struct {
	store   store.ObservationStore
	fetcher jhu.Fetcher
	opts    Options
	scope   tally.Scope
	now     func() time.Time
}

func (c reportCrawler) start() time.Time {
	from := c.opts.From
	if !c.opts.Resume {
		return from
	}

	latest, err := c.store.LatestObservationDate()
	if err != nil {
		if err != store.ErrNoObservation {
			log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Warn("latest report date")
		}
		return from
	}
	if latest.After(from) {
		return latest
	}
	return from
}

// Run walks every daily report up to today and replaces the stored
// observations of each fetched date
func (c reportCrawler) Run(ctx context.Context) error {
	runID := uuid.New().String()
	stopwatch := c.scope.Timer("run.duration").Start()
	defer stopwatch.Stop()

	stored := c.scope.Counter("observations.stored")
	fetcher := countingFetcher{next: c.fetcher, missing: c.scope.Counter("reports.missing")}

	from := c.start()
	to := c.now().UTC()
	log.WithFields(log.Fields{"prefix": logPrefix, "run": runID, "from": from.Format("2006-01-02"), "to": to.Format("2006-01-02")}).Info("crawl daily reports")

	days := 0
	err := jhu.FetchRange(ctx, fetcher, from, to, func(date time.Time, rows []schema.RawObservation) error {
		for i := range rows {
			rows[i].RunID = runID
		}

		n, err := c.store.ReplaceObservations(date, rows)
		if err != nil {
			return err
		}
		stored.Inc(int64(n))
		days++
		return nil
	})
	if err != nil {
		sentry.CaptureException(err)
		log.WithFields(log.Fields{"prefix": logPrefix, "run": runID, "error": err}).Error("crawl daily reports")
		return err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "run": runID, "days": days}).Info("crawl finished")
	return nil
}

// NewReportCrawler - new crawler of the daily reports
func NewReportCrawler(s store.ObservationStore, f jhu.Fetcher, opts Options, scope tally.Scope) Cron {
	if scope == nil {
		scope = tally.NoopScope
	}
	if opts.From.IsZero() {
		opts.From = jhu.FirstReportDate
	}

	return &reportCrawler{
		store:   s,
		fetcher: f,
		opts:    opts,
		scope:   scope,
		now:     time.Now,
	}
}
