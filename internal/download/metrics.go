package download

import "github.com/prometheus/client_golang/prometheus"

var (
	downloadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollamagui",
			Subsystem: "download",
			Name:      "total",
			Help:      "Finished model pulls by result",
		},
		[]string{"result"},
	)

	downloadRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollamagui",
			Subsystem: "download",
			Name:      "rejected_total",
			Help:      "Download requests rejected before starting",
		},
		[]string{"reason"},
	)

	downloadInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ollamagui",
			Subsystem: "download",
			Name:      "inflight",
			Help:      "Model pulls currently running",
		},
	)
)

func init() {
	prometheus.MustRegister(downloadTotal, downloadRejected, downloadInflight)
}
