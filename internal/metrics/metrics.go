package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"foodgram/internal/db"
)

// Lookup outcomes recorded for short-link resolutions.
const (
	OutcomeHit      = "hit"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var shortLinkLookupDesc = prometheus.NewDesc(
	"foodgram_shortlink_lookups_total",
	"Total short-link lookup count by outcome",
	[]string{"url_hash", "outcome"},
	nil,
)

// ShortLinkCollector is a custom Prometheus collector that reads short-link
// lookup counts from the database on each scrape.
type ShortLinkCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *ShortLinkCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- shortLinkLookupDesc
}

// Collect queries the database for all lookups and emits them as counters.
func (c *ShortLinkCollector) Collect(ch chan<- prometheus.Metric) {
	lookups, err := c.db.GetAllShortLinkLookups(context.Background())
	if err != nil {
		slog.Error("failed to collect short-link lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			shortLinkLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.URLHash,
			l.Outcome,
		)
	}
}

// Recorder provides async short-link lookup recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&ShortLinkCollector{db: database})
	})
}

// RecordShortLinkLookup asynchronously records a resolution outcome.
func RecordShortLinkLookup(hash, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementShortLinkLookup(context.Background(), hash, outcome); err != nil {
			slog.Error("failed to record short-link lookup", "hash", hash, "outcome", outcome, "error", err)
		}
	}()
}
