package httpimpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/services/blockchain"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/stores/utxo/memory"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/mrlucciola/pow-blockchain/util/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, checks ...health.Check) (*HTTP, *blockchain.Server) {
	t.Helper()

	utxoStore, err := memory.New("swiss")
	require.NoError(t, err)

	tSettings := settings.NewSettings()
	chain := blockchain.New(ulogger.TestLogger{}, tSettings, utxoStore)

	return New(ulogger.TestLogger{}, tSettings, chain, checks...), chain
}

func addGenesis(t *testing.T, chain *blockchain.Server) *model.Block {
	t.Helper()

	coinbase := model.NewCoinbaseTransaction(0, model.NewOutput("Alice", 50), model.NewOutput("Bob", 7))
	genesis := model.NewBlock(0, 1000, chainhash.Hash{}, []byte("Genesis block"), []*model.Transaction{coinbase}, model.MaxTarget)

	require.NoError(t, chain.ProcessBlock(context.Background(), genesis))

	return genesis
}

func get(t *testing.T, h *HTTP, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestGetTip(t *testing.T) {
	h, chain := setup(t)

	t.Run("empty chain", func(t *testing.T) {
		rec := get(t, h, "/api/v1/tip")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.InDelta(t, float64(errors.ERR_NOT_FOUND), decode(t, rec)["code"], 0)
	})

	t.Run("genesis", func(t *testing.T) {
		genesis := addGenesis(t, chain)

		rec := get(t, h, "/api/v1/tip")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, genesis.Hash().String(), body["hash"])
		assert.Equal(t, "Genesis block", body["data"])
		assert.InDelta(t, 0, body["index"], 0)
	})
}

func TestGetBlock(t *testing.T) {
	h, chain := setup(t)
	genesis := addGenesis(t, chain)

	rec := get(t, h, "/api/v1/block/0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, genesis.Hash().String(), decode(t, rec)["hash"])

	rec = get(t, h, "/api/v1/block/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/api/v1/block/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.InDelta(t, float64(errors.ERR_INVALID_ARGUMENT), decode(t, rec)["code"], 0)

	rec = get(t, h, "/api/v1/blocks")
	require.Equal(t, http.StatusOK, rec.Code)

	var blocks []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blocks))
	require.Len(t, blocks, 1)
	assert.Equal(t, genesis.Hash().String(), blocks[0]["hash"])
}

func TestGetUTXOs(t *testing.T) {
	h, chain := setup(t)
	genesis := addGenesis(t, chain)

	rec := get(t, h, "/api/v1/utxos")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.InDelta(t, 1, body["height"], 0)
	assert.InDelta(t, 2, body["count"], 0)

	input, err := genesis.Transactions[0].SpendOutput(0)
	require.NoError(t, err)

	hash := input.UTXOHash()
	assert.Contains(t, body["unspent"], hash.String())

	t.Run("unspent", func(t *testing.T) {
		rec := get(t, h, "/api/v1/utxo/"+hash.String())
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, hash.String(), body["hash"])
		assert.Equal(t, true, body["unspent"])
	})

	t.Run("unknown", func(t *testing.T) {
		rec := get(t, h, "/api/v1/utxo/"+chainhash.HashH([]byte("nothing")).String())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, decode(t, rec)["unspent"])
	})

	t.Run("invalid hash", func(t *testing.T) {
		rec := get(t, h, "/api/v1/utxo/zz")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	ok := health.Check{Name: "ok", Check: func(context.Context) (int, string, error) {
		return http.StatusOK, "", nil
	}}
	down := health.Check{Name: "down", Check: func(context.Context) (int, string, error) {
		return http.StatusServiceUnavailable, "", errors.NewServiceNotStartedError("not started")
	}}

	h, _ := setup(t, ok)
	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"resource": "ok"`)

	h, _ = setup(t, ok, down)
	rec = get(t, h, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"resource": "down"`)
}

func TestMetricsAndAlive(t *testing.T) {
	h, _ := setup(t)

	rec := get(t, h, "/alive")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")

	// make sure at least one asset series exists
	_ = get(t, h, "/api/v1/blocks")

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "powchain_asset_http_requests")
}
