package memory

import (
	"context"
	"net/http"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/dolthub/swiss"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
)

type shard struct {
	mu sync.RWMutex
	m  *swiss.Map[chainhash.Hash, struct{}]
}

// SplitByHash spreads the UTXO set over 256 swiss maps keyed by the first byte of the hash, each
// with its own lock, so lookups on different shards do not contend.
type SplitByHash struct {
	shards [256]*shard
}

var _ utxo.Store = (*SplitByHash)(nil)

func NewSplitByHash(size uint32) *SplitByHash {
	db := &SplitByHash{}

	shardSize := size / 256
	if shardSize == 0 {
		shardSize = 1
	}

	for i := range db.shards {
		db.shards[i] = &shard{m: swiss.NewMap[chainhash.Hash, struct{}](shardSize)}
	}

	return db
}

func (m *SplitByHash) shardFor(hash chainhash.Hash) *shard {
	return m.shards[hash[0]]
}

func (m *SplitByHash) Health(_ context.Context) (int, string, error) {
	return http.StatusOK, "SplitByHash Store available", nil
}

func (m *SplitByHash) Exists(ctx context.Context, hash chainhash.Hash) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.NewContextCanceledError("utxo lookup canceled", err)
	}

	s := m.shardFor(hash)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.Has(hash), nil
}

// lockShards write-locks every shard touched by hashes, in ascending shard order.
func (m *SplitByHash) lockShards(hashes ...[]chainhash.Hash) func() {
	var touched [256]bool

	for _, list := range hashes {
		for _, hash := range list {
			touched[hash[0]] = true
		}
	}

	locked := make([]*shard, 0, 256)

	for i, ok := range touched {
		if ok {
			m.shards[i].mu.Lock()
			locked = append(locked, m.shards[i])
		}
	}

	return func() {
		for _, s := range locked {
			s.mu.Unlock()
		}
	}
}

func (m *SplitByHash) Apply(ctx context.Context, spent []chainhash.Hash, created []chainhash.Hash) error {
	if err := ctx.Err(); err != nil {
		return errors.NewContextCanceledError("utxo apply canceled", err)
	}

	unlock := m.lockShards(spent, created)
	defer unlock()

	for _, hash := range spent {
		if !m.shardFor(hash).m.Has(hash) {
			return errors.NewNotFoundError("utxo %s not found", hash)
		}
	}

	for _, hash := range spent {
		m.shardFor(hash).m.Delete(hash)
	}

	for _, hash := range created {
		m.shardFor(hash).m.Put(hash, struct{}{})
	}

	return nil
}

func (m *SplitByHash) Hashes(ctx context.Context) ([]chainhash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("utxo listing canceled", err)
	}

	unlock := m.rlockAll()
	defer unlock()

	hashes := make([]chainhash.Hash, 0, m.count())

	// shards are ordered by first byte, so sorting each shard sorts the whole list
	for _, s := range m.shards {
		start := len(hashes)

		s.m.Iter(func(hash chainhash.Hash, _ struct{}) bool {
			hashes = append(hashes, hash)
			return false
		})

		sortHashes(hashes[start:])
	}

	return hashes, nil
}

func (m *SplitByHash) Count(_ context.Context) (int, error) {
	unlock := m.rlockAll()
	defer unlock()

	return m.count(), nil
}

func (m *SplitByHash) count() int {
	total := 0
	for _, s := range m.shards {
		total += s.m.Count()
	}

	return total
}

func (m *SplitByHash) rlockAll() func() {
	for _, s := range m.shards {
		s.mu.RLock()
	}

	return func() {
		for _, s := range m.shards {
			s.mu.RUnlock()
		}
	}
}
