package backend

import "github.com/prometheus/client_golang/prometheus"

var (
	locateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollamagui",
			Subsystem: "backend",
			Name:      "locate_total",
			Help:      "Backend resolutions by winning method",
		},
		[]string{"method"},
	)

	attemptFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollamagui",
			Subsystem: "backend",
			Name:      "attempt_failures_total",
			Help:      "Inconclusive strategy attempts by strategy and reason",
		},
		[]string{"strategy", "reason"},
	)
)

func init() {
	prometheus.MustRegister(locateTotal, attemptFailures)
}
