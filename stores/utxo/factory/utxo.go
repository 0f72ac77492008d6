// Package factory creates the utxo.Store configured by the utxostore setting, a URL of the form
//
//	memory://swiss
//	memory://split?logging=true
//
// The scheme picks the backend, the host picks the variant and logging=true wraps the store in a
// logger that reports every call.
package factory

import (
	"context"
	"net/url"

	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
	storelogger "github.com/mrlucciola/pow-blockchain/stores/utxo/logger"
	"github.com/mrlucciola/pow-blockchain/ulogger"
)

type storeFactory func(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings, storeURL *url.URL) (utxo.Store, error)

var availableDatabases = map[string]storeFactory{}

func NewStore(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings) (utxo.Store, error) {
	storeURL := tSettings.UtxoStore.StoreURL
	if storeURL == nil {
		return nil, errors.NewConfigurationError("no utxostore setting found")
	}

	dbInit, ok := availableDatabases[storeURL.Scheme]
	if !ok {
		return nil, errors.NewConfigurationError("unknown utxostore scheme %q", storeURL.Scheme)
	}

	store, err := dbInit(ctx, logger, tSettings, storeURL)
	if err != nil {
		return nil, err
	}

	if storeURL.Query().Get("logging") == "true" {
		logger.Infof("[UTXOStore] logging enabled for %s", storeURL)
		store = storelogger.New(logger, store)
	}

	return store, nil
}
