package metrics

import (
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const logPrefix = "metrics"

type capabilities struct{}

func (capabilities) Reporting() bool { return true }
func (capabilities) Tagging() bool   { return true }

// LogReporter writes tally metrics as log lines
type LogReporter struct {
	entry *log.Entry
}

func NewLogReporter(logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogReporter{entry: logger.WithField("prefix", logPrefix)}
}

func (r *LogReporter) fields(name string, tags map[string]string) *log.Entry {
	e := r.entry.WithField("metric", name)
	for k, v := range tags {
		e = e.WithField(k, v)
	}
	return e
}

func (r *LogReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.fields(name, tags).WithField("value", value).Info("counter")
}

func (r *LogReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.fields(name, tags).WithField("value", value).Info("gauge")
}

func (r *LogReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.fields(name, tags).WithField("value", interval.String()).Info("timer")
}

func (r *LogReporter) ReportHistogramValueSamples(name string, tags map[string]string, _ tally.Buckets, bucketLowerBound, bucketUpperBound float64, samples int64) {
	r.fields(name, tags).WithFields(log.Fields{
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Info("histogram")
}

func (r *LogReporter) ReportHistogramDurationSamples(name string, tags map[string]string, _ tally.Buckets, bucketLowerBound, bucketUpperBound time.Duration, samples int64) {
	r.fields(name, tags).WithFields(log.Fields{
		"lower":   bucketLowerBound.String(),
		"upper":   bucketUpperBound.String(),
		"samples": samples,
	}).Info("histogram")
}

func (r *LogReporter) Capabilities() tally.Capabilities {
	return capabilities{}
}

func (r *LogReporter) Flush() {}

// NewScope - root scope reporting to the log every interval
func NewScope(prefix string, interval time.Duration) (tally.Scope, io.Closer) {
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix:   prefix,
		Reporter: NewLogReporter(nil),
	}, interval)
}
