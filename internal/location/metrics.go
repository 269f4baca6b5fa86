package location

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// strategySuccesses counts resolutions per strategy.
	strategySuccesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "location_strategy_successes_total",
		Help: "Total number of successful location resolutions by strategy",
	}, []string{"strategy"})

	// strategyFailures counts fall-throughs per strategy.
	strategyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "location_strategy_failures_total",
		Help: "Total number of failed location strategy attempts by strategy",
	}, []string{"strategy"})
)
