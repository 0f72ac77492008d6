package memory

import (
	"bytes"
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/dolthub/swiss"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
)

type SwissMap struct {
	mu sync.RWMutex
	m  *swiss.Map[chainhash.Hash, struct{}]
}

var _ utxo.Store = (*SwissMap)(nil)

func NewSwissMap(size uint32) *SwissMap {
	// the swiss map uses a lot less memory than the standard map
	return &SwissMap{
		m: swiss.NewMap[chainhash.Hash, struct{}](size),
	}
}

func (m *SwissMap) Health(_ context.Context) (int, string, error) {
	return http.StatusOK, "SwissMap Store available", nil
}

func (m *SwissMap) Exists(ctx context.Context, hash chainhash.Hash) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.NewContextCanceledError("utxo lookup canceled", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.m.Has(hash), nil
}

func (m *SwissMap) Apply(ctx context.Context, spent []chainhash.Hash, created []chainhash.Hash) error {
	if err := ctx.Err(); err != nil {
		return errors.NewContextCanceledError("utxo apply canceled", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, hash := range spent {
		if !m.m.Has(hash) {
			return errors.NewNotFoundError("utxo %s not found", hash)
		}
	}

	for _, hash := range spent {
		m.m.Delete(hash)
	}

	for _, hash := range created {
		m.m.Put(hash, struct{}{})
	}

	return nil
}

func (m *SwissMap) Hashes(ctx context.Context) ([]chainhash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("utxo listing canceled", err)
	}

	m.mu.RLock()
	hashes := make([]chainhash.Hash, 0, m.m.Count())
	m.m.Iter(func(hash chainhash.Hash, _ struct{}) bool {
		hashes = append(hashes, hash)
		return false
	})
	m.mu.RUnlock()

	sortHashes(hashes)

	return hashes, nil
}

func (m *SwissMap) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.m.Count(), nil
}

func sortHashes(hashes []chainhash.Hash) {
	slices.SortFunc(hashes, func(a, b chainhash.Hash) int {
		return bytes.Compare(a[:], b[:])
	})
}
