package catalog

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollamagui",
			Subsystem: "catalog",
			Name:      "fetch_total",
			Help:      "Remote catalog fetches by result",
		},
		[]string{"result"},
	)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ollamagui",
			Subsystem: "catalog",
			Name:      "cache_hits_total",
			Help:      "Catalog lookups served from the cache",
		},
	)
)

func init() {
	prometheus.MustRegister(fetchTotal, cacheHits)
}
