package blockchain

import (
	"sync"

	"github.com/mrlucciola/pow-blockchain/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusBlockchainHealth         prometheus.Counter
	prometheusBlockchainProcessBlock   prometheus.Histogram
	prometheusBlockchainBlocksAccepted prometheus.Counter
	prometheusBlockchainBlocksRejected *prometheus.CounterVec
	prometheusBlockchainHeight         prometheus.Gauge
	prometheusBlockchainUtxoCount      prometheus.Gauge
	prometheusBlockchainBlockTxs       prometheus.Histogram
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusBlockchainHealth = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "powchain",
			Subsystem: "blockchain",
			Name:      "health",
			Help:      "Number of calls to the health check of the blockchain service",
		},
	)

	prometheusBlockchainProcessBlock = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "powchain",
			Subsystem: "blockchain",
			Name:      "process_block",
			Help:      "Histogram of block validation and commit duration",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusBlockchainBlocksAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "powchain",
			Subsystem: "blockchain",
			Name:      "blocks_accepted",
			Help:      "Number of blocks appended to the chain",
		},
	)

	prometheusBlockchainBlocksRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "powchain",
			Subsystem: "blockchain",
			Name:      "blocks_rejected",
			Help:      "Number of blocks rejected, by error code",
		},
		[]string{"reason"},
	)

	prometheusBlockchainHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "powchain",
			Subsystem: "blockchain",
			Name:      "height",
			Help:      "Number of blocks in the chain",
		},
	)

	prometheusBlockchainUtxoCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "powchain",
			Subsystem: "blockchain",
			Name:      "utxo_count",
			Help:      "Number of unspent outputs after the last accepted block",
		},
	)

	prometheusBlockchainBlockTxs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "powchain",
			Subsystem: "blockchain",
			Name:      "block_transactions",
			Help:      "Histogram of the number of transactions in accepted blocks",
			Buckets:   util.MetricsBucketsSizeSmall,
		},
	)
}
