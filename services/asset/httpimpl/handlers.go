package httpimpl

import (
	"net/http"
	"strconv"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/labstack/echo/v4"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/tracing"
)

type utxoResponse struct {
	Hash    string `json:"hash"`
	Unspent bool   `json:"unspent"`
}

type utxosResponse struct {
	Height  int      `json:"height"`
	Count   int      `json:"count"`
	Unspent []string `json:"unspent"`
}

// GetTip returns the last accepted block as JSON, 404 before genesis.
func (h *HTTP) GetTip() func(c echo.Context) error {
	return func(c echo.Context) error {
		_, _, deferFn := tracing.StartTracing(c.Request().Context(), "GetTip_http",
			tracing.WithDebugLogMessage(h.logger, "[Asset_http] GetTip"),
		)
		defer deferFn()

		tip := h.chain.Tip()
		if tip == nil {
			return sendCodedError(c, errors.NewNotFoundError("chain is empty"))
		}

		prometheusAssetHTTPRequests.WithLabelValues("GetTip", "200").Inc()

		return h.sendJSON(c, tip)
	}
}

// GetBlocks returns every accepted block, genesis first.
func (h *HTTP) GetBlocks() func(c echo.Context) error {
	return func(c echo.Context) error {
		_, _, deferFn := tracing.StartTracing(c.Request().Context(), "GetBlocks_http",
			tracing.WithDebugLogMessage(h.logger, "[Asset_http] GetBlocks"),
		)
		defer deferFn()

		prometheusAssetHTTPRequests.WithLabelValues("GetBlocks", "200").Inc()

		return h.sendJSON(c, h.chain.Blocks())
	}
}

// GetBlock returns the block at the :index path parameter.
func (h *HTTP) GetBlock() func(c echo.Context) error {
	return func(c echo.Context) error {
		_, _, deferFn := tracing.StartTracing(c.Request().Context(), "GetBlock_http",
			tracing.WithDebugLogMessage(h.logger, "[Asset_http] GetBlock for %s: %s", c.Request().RemoteAddr, c.Param("index")),
		)
		defer deferFn()

		index, err := strconv.ParseUint(c.Param("index"), 10, 32)
		if err != nil {
			prometheusAssetHTTPRequests.WithLabelValues("GetBlock", "400").Inc()
			return sendCodedError(c, errors.NewInvalidArgumentError("invalid block index %q", c.Param("index"), err))
		}

		block, err := h.chain.BlockAt(uint32(index))
		if err != nil {
			prometheusAssetHTTPRequests.WithLabelValues("GetBlock", "404").Inc()
			return sendCodedError(c, err)
		}

		prometheusAssetHTTPRequests.WithLabelValues("GetBlock", "200").Inc()

		return h.sendJSON(c, block)
	}
}

// GetUTXOs lists the hashes of every unspent output.
func (h *HTTP) GetUTXOs() func(c echo.Context) error {
	return func(c echo.Context) error {
		ctx, _, deferFn := tracing.StartTracing(c.Request().Context(), "GetUTXOs_http",
			tracing.WithDebugLogMessage(h.logger, "[Asset_http] GetUTXOs"),
		)
		defer deferFn()

		unspent, err := h.chain.UnspentOutputs(ctx)
		if err != nil {
			prometheusAssetHTTPRequests.WithLabelValues("GetUTXOs", "500").Inc()
			return sendCodedError(c, err)
		}

		resp := utxosResponse{
			Height:  h.chain.Height(),
			Count:   len(unspent),
			Unspent: make([]string, 0, len(unspent)),
		}

		for _, hash := range unspent {
			resp.Unspent = append(resp.Unspent, hash.String())
		}

		prometheusAssetHTTPRequests.WithLabelValues("GetUTXOs", "200").Inc()

		return h.sendJSON(c, resp)
	}
}

// GetUTXO reports whether the :hash path parameter is an unspent output.
func (h *HTTP) GetUTXO() func(c echo.Context) error {
	return func(c echo.Context) error {
		ctx, _, deferFn := tracing.StartTracing(c.Request().Context(), "GetUTXO_http",
			tracing.WithDebugLogMessage(h.logger, "[Asset_http] GetUTXO for %s: %s", c.Request().RemoteAddr, c.Param("hash")),
		)
		defer deferFn()

		hash, err := chainhash.NewHashFromStr(c.Param("hash"))
		if err != nil || len(c.Param("hash")) != 2*chainhash.HashSize {
			prometheusAssetHTTPRequests.WithLabelValues("GetUTXO", "400").Inc()
			return sendCodedError(c, errors.NewInvalidArgumentError("invalid utxo hash %q", c.Param("hash")))
		}

		unspent, err := h.chain.IsUnspent(ctx, *hash)
		if err != nil {
			prometheusAssetHTTPRequests.WithLabelValues("GetUTXO", "500").Inc()
			return sendCodedError(c, err)
		}

		prometheusAssetHTTPRequests.WithLabelValues("GetUTXO", "200").Inc()

		return h.sendJSON(c, utxoResponse{Hash: hash.String(), Unspent: unspent})
	}
}

func (h *HTTP) sendJSON(c echo.Context, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return sendError(c, http.StatusInternalServerError, errors.ERR_PROCESSING, errors.NewProcessingError("failed to marshal response", err))
	}

	return c.JSONBlob(http.StatusOK, b)
}
