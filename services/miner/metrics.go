package miner

import (
	"sync"

	"github.com/mrlucciola/pow-blockchain/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusBlockMined       prometheus.Histogram
	prometheusBlockAttempts    prometheus.Histogram
	prometheusMinerHashes      prometheus.Counter
	prometheusMinerJobCanceled prometheus.Counter
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusBlockMined = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "powchain",
			Subsystem: "miner",
			Name:      "block_mined",
			Help:      "Histogram of block mining",
			Buckets:   util.MetricsBucketsMilliLongSeconds,
		},
	)

	prometheusBlockAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "powchain",
			Subsystem: "miner",
			Name:      "block_attempts",
			Help:      "Histogram of the number of hashes tried per mined block",
			Buckets:   util.MetricsBucketsHashAttempts,
		},
	)

	prometheusMinerHashes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "powchain",
			Subsystem: "miner",
			Name:      "hashes",
			Help:      "Number of block hashes computed",
		},
	)

	prometheusMinerJobCanceled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "powchain",
			Subsystem: "miner",
			Name:      "job_canceled",
			Help:      "Number of mining jobs stopped before finding a solution",
		},
	)
}
