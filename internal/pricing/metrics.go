package pricing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// estimateCacheHits counts estimates served from the result cache.
	estimateCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_cache_hits_total",
		Help: "Total number of price estimates served from cache",
	})

	// estimateCacheMisses counts estimates that were recomputed.
	estimateCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_cache_misses_total",
		Help: "Total number of price estimates computed from tables",
	})

	// estimateDuration tracks the time taken per estimate.
	estimateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_estimate_duration_seconds",
		Help:    "Time taken to compute a price estimate",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	// externalQuoteErrors counts failed external quote fetches. These are
	// non-fatal but worth watching.
	externalQuoteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_external_quote_errors_total",
		Help: "Total number of failed external quote source fetches",
	})

	// externalQuotesMerged tracks how many external quotes were blended
	// into comparisons.
	externalQuotesMerged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_external_quotes_merged_total",
		Help: "Total number of external quotes merged into comparisons",
	})

	// insightDuration tracks the time taken per market insight summary.
	insightDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_insight_duration_seconds",
		Help:    "Time taken to build a market insight summary",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)

func observeEstimate(start time.Time) {
	estimateDuration.Observe(time.Since(start).Seconds())
}

func observeInsight(start time.Time) {
	insightDuration.Observe(time.Since(start).Seconds())
}
