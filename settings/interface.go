package settings

import (
	"net/url"
	"time"

	"github.com/mrlucciola/pow-blockchain/chaincfg"
)

type LoggingSettings struct {
	Level      string
	Type       string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

type MinerSettings struct {
	// Workers is the number of goroutines searching the nonce space of one block.
	Workers int
	// CheckInterval is the number of hash attempts between two context checks.
	CheckInterval int
	// Difficulty overrides the network PowLimit when set, as a hex encoded 256 bit target.
	Difficulty string
}

type DemoSettings struct {
	Blocks       int
	MinerAddress string
	BlockDelay   time.Duration
}

type UtxoStoreSettings struct {
	// StoreURL selects the utxo store, e.g. memory://swiss or memory://split?logging=true.
	StoreURL *url.URL
}

type MetricsSettings struct {
	PrometheusEndpoint string
}

type AssetSettings struct {
	// HTTPListenAddress is where the chain inspector, metrics and health endpoints are served. Empty
	// disables the HTTP server.
	HTTPListenAddress string
	APIPrefix         string
	EchoDebug         bool
}

type TracingSettings struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

type Settings struct {
	ClientName     string
	ChainCfgParams *chaincfg.Params
	Logging        LoggingSettings
	Miner          MinerSettings
	Demo           DemoSettings
	UtxoStore      UtxoStoreSettings
	Metrics        MetricsSettings
	Asset          AssetSettings
	Tracing        TracingSettings
}
