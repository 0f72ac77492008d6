package httpimpl

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// prometheusAssetHTTPRequests counts handled requests by handler and response status.
var prometheusAssetHTTPRequests *prometheus.CounterVec

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusAssetHTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "powchain",
			Subsystem: "asset",
			Name:      "http_requests",
			Help:      "Number of requests handled by the asset HTTP service",
		},
		[]string{
			"function",
			"status",
		},
	)
}
