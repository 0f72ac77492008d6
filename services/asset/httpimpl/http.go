// Package httpimpl serves a read-only view of the chain over HTTP, together with the prometheus
// metrics and the health report of the running services.
package httpimpl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/mrlucciola/pow-blockchain/util/health"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ChainReader is the part of the blockchain service the handlers read from.
type ChainReader interface {
	Tip() *model.Block
	Height() int
	Blocks() []*model.Block
	BlockAt(index uint32) (*model.Block, error)
	UnspentOutputs(ctx context.Context) ([]chainhash.Hash, error)
	IsUnspent(ctx context.Context, hash chainhash.Hash) (bool, error)
}

type HTTP struct {
	logger    ulogger.Logger
	settings  *settings.Settings
	chain     ChainReader
	e         *echo.Echo
	startTime time.Time
}

func New(logger ulogger.Logger, tSettings *settings.Settings, chain ChainReader, checks ...health.Check) *HTTP {
	initPrometheusMetrics()

	e := echo.New()
	e.Debug = tSettings.Asset.EchoDebug
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	if e.Debug {
		e.Use(customLoggerMiddleware(logger))
	}

	h := &HTTP{
		logger:    logger,
		settings:  tSettings,
		chain:     chain,
		e:         e,
		startTime: time.Now(),
	}

	e.GET("/alive", func(c echo.Context) error {
		return c.String(http.StatusOK, fmt.Sprintf("powchain is alive. Uptime: %s\n", time.Since(h.startTime)))
	})

	e.GET("/health", echo.WrapHandler(health.Handler(checks...)))
	e.GET(tSettings.Metrics.PrometheusEndpoint, echo.WrapHandler(promhttp.Handler()))

	apiGroup := e.Group(tSettings.Asset.APIPrefix)

	apiGroup.GET("/tip", h.GetTip())
	apiGroup.GET("/blocks", h.GetBlocks())
	apiGroup.GET("/block/:index", h.GetBlock())
	apiGroup.GET("/utxos", h.GetUTXOs())
	apiGroup.GET("/utxo/:hash", h.GetUTXO())

	return h
}

// Start serves until ctx is done or Stop is called.
func (h *HTTP) Start(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()

		h.logger.Infof("[Asset] HTTP service shutting down")

		if err := h.e.Shutdown(context.Background()); err != nil {
			h.logger.Errorf("[Asset] HTTP service shutdown error: %s", err)
		}
	}()

	h.logger.Infof("[Asset] HTTP listening on %s", addr)

	err := h.e.Start(addr)
	if !errors.Is(err, http.ErrServerClosed) {
		return errors.NewServiceError("[Asset] HTTP service stopped", err)
	}

	return nil
}

func (h *HTTP) Stop(ctx context.Context) error {
	return h.e.Shutdown(ctx)
}

// ServeHTTP lets the routes be exercised without a listener.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.e.ServeHTTP(w, r)
}

func customLoggerMiddleware(logger ulogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Infof("http request: Method=%s, URI=%s, RemoteAddr=%s Status=%d, Duration=%v, err=%v",
				c.Request().Method, c.Request().RequestURI, c.Request().RemoteAddr, c.Response().Status, time.Since(start), err)

			return nil
		}
	}
}
