package cpuminer

import (
	"context"
	"testing"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oneZeroByte is met by roughly one hash in 256.
var oneZeroByte = func() model.Target {
	t := model.MaxTarget
	t[0] = 0

	return t
}()

func testBlock(difficulty model.Target) *model.Block {
	coinbase := model.NewCoinbaseTransaction(0, model.NewOutput("Alice", 50))
	return model.NewBlock(0, 1000, chainhash.Hash{}, []byte("Genesis block"), []*model.Transaction{coinbase}, difficulty)
}

func TestMine(t *testing.T) {
	t.Run("single worker matches block.Mine", func(t *testing.T) {
		block := testBlock(oneZeroByte)

		result, err := Mine(context.Background(), block, 1, 16)
		require.NoError(t, err)

		assert.Equal(t, uint64(0), block.Nonce)

		block.Mine()

		assert.Equal(t, block.Nonce, result.Nonce)
		assert.Equal(t, block.Hash(), result.Hash)
		assert.Equal(t, result.Nonce+1, result.Attempts)
	})

	t.Run("parallel workers find a valid nonce", func(t *testing.T) {
		for _, workers := range []int{2, 4, 8} {
			block := testBlock(oneZeroByte)

			result, err := Mine(context.Background(), block, workers, 16)
			require.NoError(t, err)

			assert.Equal(t, result.Hash, block.CalculateHashWithNonce(result.Nonce))
			assert.True(t, model.CheckDifficulty(result.Hash, block.Difficulty))
			assert.GreaterOrEqual(t, result.Attempts, uint64(1))
		}
	})

	t.Run("starts at the current nonce", func(t *testing.T) {
		block := testBlock(model.MaxTarget)
		block.Nonce = 42

		result, err := Mine(context.Background(), block, 1, 16)
		require.NoError(t, err)

		assert.Equal(t, uint64(42), result.Nonce)
		assert.Equal(t, uint64(1), result.Attempts)
	})

	t.Run("canceled", func(t *testing.T) {
		block := testBlock(model.Target{})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		result, err := Mine(ctx, block, 4, 64)
		require.ErrorIs(t, err, errors.ErrContextCanceled)
		assert.Nil(t, result)
	})
}
