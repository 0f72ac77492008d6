package settings

import (
	"github.com/mrlucciola/pow-blockchain/chaincfg"
)

func NewSettings() *Settings {
	params, err := chaincfg.GetChainParams(getString("network", "mainnet"))
	if err != nil {
		panic(err)
	}

	return &Settings{
		ClientName:     getString("clientName", "powchain"),
		ChainCfgParams: params,
		Logging: LoggingSettings{
			Level:      getString("logLevel", "INFO"),
			Type:       getString("loggerType", "zerolog"),
			File:       getString("logFile", "powchain.log"),
			MaxSizeMB:  getInt("logFile_maxSizeMB", 100),
			MaxBackups: getInt("logFile_maxBackups", 3),
		},
		Miner: MinerSettings{
			Workers:       getInt("miner_workers", 1),
			CheckInterval: getInt("miner_checkInterval", 1024),
			Difficulty:    getString("miner_difficulty", ""),
		},
		Demo: DemoSettings{
			Blocks:       getInt("demo_blocks", 10),
			MinerAddress: getString("demo_minerAddress", "Chris"),
			BlockDelay:   getDuration("demo_blockDelay", 0),
		},
		UtxoStore: UtxoStoreSettings{
			StoreURL: getURL("utxostore", "memory://swiss"),
		},
		Metrics: MetricsSettings{
			PrometheusEndpoint: getString("prometheusEndpoint", "/metrics"),
		},
		Asset: AssetSettings{
			HTTPListenAddress: getString("asset_httpListenAddress", ""),
			APIPrefix:         getString("asset_apiPrefix", "/api/v1"),
			EchoDebug:         getBool("asset_echoDebug", false),
		},
		Tracing: TracingSettings{
			Enabled:    getBool("use_otel_tracing", false),
			Endpoint:   getString("tracing_collectorURL", "localhost:4318"),
			SampleRate: getFloat64("tracing_sampleRate", 0.01),
		},
	}
}
