// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BenchCasesTotal counts finished benchmark cases by outcome ("passed" / "failed")
	BenchCasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veribench_cases_total",
			Help: "Total number of benchmark cases run",
		},
		[]string{"case", "outcome"},
	)

	// BenchCaseDurationSeconds observes how long each case ran
	BenchCaseDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "veribench_case_duration_seconds",
			Help:    "Benchmark case run time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		},
		[]string{"case"},
	)

	// SessionTransitionsTotal counts call session state changes
	SessionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veribench_session_transitions_total",
			Help: "Total number of call session state transitions",
		},
		[]string{"from", "to"},
	)
)

// Outcome returns the outcome label for a case result.
func Outcome(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}
