// Package tests holds the behaviour every utxo.Store implementation must share.
package tests

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hashes returns n distinct hashes, spread over the first byte.
func Hashes(n int) []chainhash.Hash {
	hashes := make([]chainhash.Hash, n)
	for i := range hashes {
		hashes[i] = chainhash.HashH([]byte(fmt.Sprintf("utxo-%d", i)))
	}

	return hashes
}

func Health(t *testing.T, db utxo.Store) {
	status, msg, err := db.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, msg)
}

func Apply(t *testing.T, db utxo.Store) {
	ctx := context.Background()
	hashes := Hashes(10)

	require.NoError(t, db.Apply(ctx, nil, hashes[:6]))

	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	require.NoError(t, db.Apply(ctx, hashes[:2], hashes[6:]))

	for i, hash := range hashes {
		exists, err := db.Exists(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, i >= 2, exists, "hash %d", i)
	}

	count, err = db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, count)
}

func ApplyIsAllOrNothing(t *testing.T, db utxo.Store) {
	ctx := context.Background()
	hashes := Hashes(4)

	require.NoError(t, db.Apply(ctx, nil, hashes[:2]))

	// hashes[2] was never created
	err := db.Apply(ctx, []chainhash.Hash{hashes[0], hashes[2]}, []chainhash.Hash{hashes[3]})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	got, err := db.Hashes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, hashes[:2], got)
}

func HashesAreSorted(t *testing.T, db utxo.Store) {
	ctx := context.Background()
	hashes := Hashes(300)

	require.NoError(t, db.Apply(ctx, nil, hashes))

	got, err := db.Hashes(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(hashes))

	for i := 1; i < len(got); i++ {
		assert.Negative(t, compare(got[i-1], got[i]))
	}
}

func Canceled(t *testing.T, db utxo.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.Apply(ctx, nil, Hashes(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrContextCanceled))

	count, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func Concurrent(t *testing.T, db utxo.Store) {
	ctx := context.Background()
	hashes := Hashes(64)

	var wg sync.WaitGroup

	for i := 0; i < len(hashes); i += 8 {
		wg.Add(1)

		go func(batch []chainhash.Hash) {
			defer wg.Done()

			assert.NoError(t, db.Apply(ctx, nil, batch))

			_, err := db.Exists(ctx, batch[0])
			assert.NoError(t, err)
		}(hashes[i : i+8])
	}

	wg.Wait()

	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(hashes), count)
}

func compare(a, b chainhash.Hash) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}
