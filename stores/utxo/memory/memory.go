// Package memory provides in-memory implementations of the utxo.Store.
package memory

import (
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
)

const defaultSize = 1024

// New returns the in-memory store of the given type: "swiss" (default) or "split".
func New(storeType string) (utxo.Store, error) {
	switch storeType {
	case "", "swiss":
		return NewSwissMap(defaultSize), nil
	case "split":
		return NewSplitByHash(defaultSize * 256), nil
	default:
		return nil, errors.NewConfigurationError("unknown utxo store type %q", storeType)
	}
}
