// Package blockchain holds the ledger and the service that feeds it blocks.
package blockchain

import (
	"context"
	"net/http"
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
	"github.com/mrlucciola/pow-blockchain/tracing"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"go.opentelemetry.io/otel/attribute"
)

// Server owns a Blockchain and serialises every read and write of it.
type Server struct {
	mu        sync.RWMutex
	logger    ulogger.Logger
	settings  *settings.Settings
	utxoStore utxo.Store
	chain     *Blockchain
}

func New(logger ulogger.Logger, tSettings *settings.Settings, utxoStore utxo.Store) *Server {
	initPrometheusMetrics()

	return &Server{
		logger:    logger,
		settings:  tSettings,
		utxoStore: utxoStore,
		chain:     NewBlockchain(logger, utxoStore),
	}
}

func (s *Server) Health(ctx context.Context) (int, string, error) {
	prometheusBlockchainHealth.Inc()

	status, details, err := s.utxoStore.Health(ctx)
	if err != nil {
		return http.StatusServiceUnavailable, details, errors.NewServiceUnavailableError("utxo store unhealthy", err)
	}

	return status, details, nil
}

// ProcessBlock runs block through UpdateWithBlock. Rejections are logged at warn level and counted by
// error code.
func (s *Server) ProcessBlock(ctx context.Context, block *model.Block) (err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "Blockchain:ProcessBlock",
		tracing.WithHistogram(prometheusBlockchainProcessBlock),
		tracing.WithAttributes(
			attribute.Int64("block.index", int64(block.Index)),
			attribute.Int("block.transactions", len(block.Transactions)),
		),
	)
	defer func() {
		deferFn(err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.chain.UpdateWithBlock(ctx, block); err != nil {
		reason := errors.ERR_UNKNOWN

		var tErr *errors.Error
		if errors.As(err, &tErr) {
			reason = tErr.Code()
		}

		prometheusBlockchainBlocksRejected.WithLabelValues(reason.String()).Inc()

		if errors.IsBlockValidationError(err) {
			s.logger.Warnf("[Blockchain] rejected block %d: %v", block.Index, err)
		} else {
			s.logger.Errorf("[Blockchain] failed to process block %d: %v", block.Index, err)
		}

		return err
	}

	prometheusBlockchainBlocksAccepted.Inc()
	prometheusBlockchainHeight.Set(float64(s.chain.Len()))
	prometheusBlockchainBlockTxs.Observe(float64(len(block.Transactions)))

	if count, cErr := s.utxoStore.Count(ctx); cErr == nil {
		prometheusBlockchainUtxoCount.Set(float64(count))
	}

	s.logger.Infof("[Blockchain] added block %d %s", block.Index, block.Hash())

	return nil
}

// Tip returns the last accepted block, or nil before genesis.
func (s *Server) Tip() *model.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.Tip()
}

// Height is the number of accepted blocks.
func (s *Server) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.Len()
}

func (s *Server) Blocks() []*model.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.Blocks()
}

func (s *Server) BlockAt(index uint32) (*model.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.BlockAt(index)
}

func (s *Server) UnspentOutputs(ctx context.Context) ([]chainhash.Hash, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.UnspentOutputs(ctx)
}

func (s *Server) IsUnspent(ctx context.Context, hash chainhash.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain.IsUnspent(ctx, hash)
}
