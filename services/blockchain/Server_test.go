package blockchain

import (
	"context"
	"net/http"
	"testing"

	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/stores/utxo/memory"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (context.Context, *Server) {
	t.Helper()

	utxoStore, err := memory.New("split")
	require.NoError(t, err)

	return context.Background(), New(ulogger.TestLogger{}, settings.NewSettings(), utxoStore)
}

func TestServer_ProcessBlock(t *testing.T) {
	ctx, server := setupServer(t)

	assert.Nil(t, server.Tip())
	assert.Equal(t, 0, server.Height())

	accepted := testutil.ToFloat64(prometheusBlockchainBlocksAccepted)

	coinbase := model.NewCoinbaseTransaction(0, model.NewOutput("Alice", 50), model.NewOutput("Bob", 7))
	genesis := model.NewBlock(0, 1000, [32]byte{}, []byte("Genesis block"), []*model.Transaction{coinbase}, model.MaxTarget)

	require.NoError(t, server.ProcessBlock(ctx, genesis))

	assert.Equal(t, 1, server.Height())
	assert.Same(t, genesis, server.Tip())
	assert.Len(t, server.Blocks(), 1)
	assert.Equal(t, accepted+1, testutil.ToFloat64(prometheusBlockchainBlocksAccepted))
	assert.Equal(t, float64(1), testutil.ToFloat64(prometheusBlockchainHeight))
	assert.Equal(t, float64(2), testutil.ToFloat64(prometheusBlockchainUtxoCount))

	unspent, err := server.UnspentOutputs(ctx)
	require.NoError(t, err)
	assert.Len(t, unspent, 2)

	input, err := coinbase.SpendOutput(1)
	require.NoError(t, err)

	isUnspent, err := server.IsUnspent(ctx, input.UTXOHash())
	require.NoError(t, err)
	assert.True(t, isUnspent)

	t.Run("rejected block is counted by reason", func(t *testing.T) {
		reason := prometheusBlockchainBlocksRejected.WithLabelValues(errors.ERR_BLOCK_MISMATCHED_PREV_HASH.String())
		rejected := testutil.ToFloat64(reason)

		block := model.NewBlock(1, 1001, [32]byte{}, nil, nil, model.MaxTarget)

		err := server.ProcessBlock(ctx, block)
		require.ErrorIs(t, err, errors.ErrBlockMismatchedPrevHash)

		assert.Equal(t, rejected+1, testutil.ToFloat64(reason))
		assert.Equal(t, 1, server.Height())
	})

	t.Run("block at", func(t *testing.T) {
		block, err := server.BlockAt(0)
		require.NoError(t, err)
		assert.Same(t, genesis, block)

		_, err = server.BlockAt(1)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestServer_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		ctx, server := setupServer(t)

		status, _, err := server.Health(ctx)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("store down", func(t *testing.T) {
		store := &MockUTXOStore{}
		store.On("Health", mock.Anything).Return(http.StatusServiceUnavailable, "down", errors.NewStorageUnavailableError("down"))

		server := New(ulogger.TestLogger{}, settings.NewSettings(), store)

		status, details, err := server.Health(context.Background())
		require.ErrorIs(t, err, errors.ErrServiceUnavailable)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "down", details)
	})
}
