package factory

import (
	"context"
	"net/url"

	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
	"github.com/mrlucciola/pow-blockchain/stores/utxo/memory"
	"github.com/mrlucciola/pow-blockchain/ulogger"
)

func init() {
	availableDatabases["memory"] = func(_ context.Context, _ ulogger.Logger, _ *settings.Settings, storeURL *url.URL) (utxo.Store, error) {
		return memory.New(storeURL.Host)
	}
}
