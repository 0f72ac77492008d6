// Package utxo defines the store holding the set of unspent transaction output hashes.
package utxo

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Store holds the UTXO set of a chain. The set only ever changes through Apply, one call per
// accepted block.
type Store interface {
	Health(ctx context.Context) (int, string, error)

	// Exists reports whether hash is currently unspent.
	Exists(ctx context.Context, hash chainhash.Hash) (bool, error)

	// Apply removes spent and then adds created, all or nothing. Spending a hash that is not in the
	// set is an ERR_NOT_FOUND error and leaves the set untouched.
	Apply(ctx context.Context, spent []chainhash.Hash, created []chainhash.Hash) error

	// Hashes returns the unspent hashes in ascending byte order.
	Hashes(ctx context.Context) ([]chainhash.Hash, error)

	Count(ctx context.Context) (int, error)
}
