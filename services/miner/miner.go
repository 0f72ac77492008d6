// Package miner runs the proof of work for blocks handed to it.
package miner

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/services/miner/cpuminer"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/tracing"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
)

// Solution is a nonce that makes a block meet its difficulty.
type Solution struct {
	JobID    string
	Nonce    uint64
	Hash     chainhash.Hash
	Attempts uint64
	Duration time.Duration
}

type Miner struct {
	logger        ulogger.Logger
	settings      *settings.Settings
	workers       int
	checkInterval uint64
	fsm           *fsm.FSM

	mu        sync.Mutex
	cancelJob context.CancelFunc

	blocksMined atomic.Uint64
	hashes      atomic.Uint64
}

func New(logger ulogger.Logger, tSettings *settings.Settings) (*Miner, error) {
	initPrometheusMetrics()

	if tSettings.Miner.Workers < 1 {
		return nil, errors.NewConfigurationError("[Miner] miner_workers must be at least 1, got %d", tSettings.Miner.Workers)
	}

	checkInterval, err := safeconversion.IntToUint64(tSettings.Miner.CheckInterval)
	if err != nil || checkInterval == 0 {
		return nil, errors.NewConfigurationError("[Miner] miner_checkInterval must be positive, got %d", tSettings.Miner.CheckInterval)
	}

	m := &Miner{
		logger:        logger,
		settings:      tSettings,
		workers:       tSettings.Miner.Workers,
		checkInterval: checkInterval,
	}

	m.fsm = m.NewFiniteStateMachine()

	return m, nil
}

func (m *Miner) Health(_ context.Context) (int, string, error) {
	if m.fsm.Is(StateStopped) {
		return http.StatusServiceUnavailable, "miner stopped", errors.NewServiceNotStartedError("[Miner] not started")
	}

	return http.StatusOK, m.fsm.Current(), nil
}

func (m *Miner) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fsm.Event(ctx, EventRun); err != nil {
		return errors.NewStateError("[Miner] cannot start from state %s", m.fsm.Current(), err)
	}

	m.logger.Infof("[Miner] started with %d workers", m.workers)

	return nil
}

// Stop cancels the job in progress, if any, and stops the miner. Stopping a stopped miner is a noop.
func (m *Miner) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancelJob != nil {
		m.cancelJob()
	}

	if m.fsm.Is(StateStopped) {
		return nil
	}

	if err := m.fsm.Event(ctx, EventStop); err != nil {
		return errors.NewStateError("[Miner] cannot stop from state %s", m.fsm.Current(), err)
	}

	m.logger.Infof("[Miner] stopped after mining %d blocks and %d hashes", m.blocksMined.Load(), m.hashes.Load())

	return nil
}

func (m *Miner) State() string {
	return m.fsm.Current()
}

// Mine searches a nonce for block, sets it on the block and caches the block hash. The miner must be
// running and mines one block at a time. A canceled search leaves the block unchanged.
func (m *Miner) Mine(ctx context.Context, block *model.Block) (solution *Solution, err error) {
	jobID := uuid.New().String()

	ctx, _, deferFn := tracing.StartTracing(ctx, "Miner:Mine",
		tracing.WithHistogram(prometheusBlockMined),
		tracing.WithLogMessage(m.logger, "[Miner] mining block %d, job %s", block.Index, jobID),
		tracing.WithAttributes(
			attribute.String("job.id", jobID),
			attribute.Int64("block.index", int64(block.Index)),
		),
	)
	defer func() {
		deferFn(err)
	}()

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.mu.Lock()
	if err = m.fsm.Event(ctx, EventMine); err != nil {
		m.mu.Unlock()
		return nil, errors.NewServiceError("[Miner] cannot mine block %d in state %s", block.Index, m.fsm.Current(), err)
	}

	m.cancelJob = cancel
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.cancelJob = nil

		// a Stop during the job has already moved the machine to STOPPED
		if m.fsm.Is(StateMining) {
			if fsmErr := m.fsm.Event(context.Background(), EventMined); fsmErr != nil {
				m.logger.Errorf("[Miner] failed to leave mining state: %v", fsmErr)
			}
		}
	}()

	start := time.Now()

	result, err := cpuminer.Mine(jobCtx, block, m.workers, m.checkInterval)
	if err != nil {
		prometheusMinerJobCanceled.Inc()
		return nil, err
	}

	block.Nonce = result.Nonce
	block.SetHash(result.Hash)

	m.blocksMined.Inc()
	m.hashes.Add(result.Attempts)
	prometheusMinerHashes.Add(float64(result.Attempts))
	prometheusBlockAttempts.Observe(float64(result.Attempts))

	solution = &Solution{
		JobID:    jobID,
		Nonce:    result.Nonce,
		Hash:     result.Hash,
		Attempts: result.Attempts,
		Duration: time.Since(start),
	}

	m.logger.Debugf("[Miner] job %s found nonce %d after %d attempts: %s", jobID, solution.Nonce, solution.Attempts, solution.Hash)

	return solution, nil
}
