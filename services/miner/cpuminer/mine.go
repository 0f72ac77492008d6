// Package cpuminer searches nonces for a block on the CPU.
package cpuminer

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/util"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Nonce    uint64
	Hash     chainhash.Hash
	Attempts uint64
}

// Mine searches for a nonce that makes the hash of block meet its difficulty. Worker i of n tries
// block.Nonce+i, block.Nonce+i+n and so on; the first worker to find a solution stops the others.
// With a single worker the nonces are tried in the same order as block.Mine.
//
// The block itself is not changed. ctx is checked every checkInterval attempts per worker.
func Mine(ctx context.Context, block *model.Block, workers int, checkInterval uint64) (*Result, error) {
	if workers < 1 {
		workers = 1
	}

	if checkInterval == 0 {
		checkInterval = 1
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		found    = atomic.NewBool(false)
		attempts = atomic.NewUint64(0)
		result   Result
	)

	g, gCtx := errgroup.WithContext(searchCtx)
	util.SafeSetLimit(g, workers)

	start := block.Nonce
	stride := uint64(workers)

	for i := 0; i < workers; i++ {
		nonce := start + uint64(i)

		g.Go(func() error {
			var tried uint64

			defer func() {
				attempts.Add(tried)
			}()

			for {
				if tried%checkInterval == 0 && gCtx.Err() != nil {
					return nil
				}

				hash := block.CalculateHashWithNonce(nonce)
				tried++

				if model.CheckDifficulty(hash, block.Difficulty) {
					if found.CompareAndSwap(false, true) {
						result.Nonce = nonce
						result.Hash = hash

						cancel()
					}

					return nil
				}

				nonce += stride
			}
		})
	}

	_ = g.Wait()

	if !found.Load() {
		return nil, errors.NewContextCanceledError("mining of block %d canceled after %d attempts", block.Index, attempts.Load(), ctx.Err())
	}

	result.Attempts = attempts.Load()

	return &result, nil
}
