// Package demo builds, mines and submits a short chain: a genesis block paying Alice 50 and Bob 7,
// followed by blocks whose coinbase pays the chain reward to the miner.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	jsoniter "github.com/json-iterator/go"
	"github.com/kpango/fastime"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/services/blockchain"
	"github.com/mrlucciola/pow-blockchain/services/miner"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
	"github.com/mrlucciola/pow-blockchain/stores/utxo/factory"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/mrlucciola/pow-blockchain/util/health"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Options struct {
	// Blocks is the number of blocks mined after genesis.
	Blocks int
	// Difficulty is the target of every block. Empty means Miner.Difficulty from the settings, or the
	// network PowLimit when that is empty too.
	Difficulty string
	Out        io.Writer
}

// Result is what Run leaves behind.
type Result struct {
	Blocks  []*model.Block
	Unspent []chainhash.Hash
}

// Difficulty resolves the target blocks are mined against.
func Difficulty(tSettings *settings.Settings, override string) (model.Target, error) {
	switch {
	case override != "":
		return model.NewTargetFromHex(override)
	case tSettings.Miner.Difficulty != "":
		return model.NewTargetFromHex(tSettings.Miner.Difficulty)
	default:
		return model.NewTargetFromBig(tSettings.ChainCfgParams.PowLimit)
	}
}

// Demo is a chain, its UTXO store and a miner, wired from settings.
type Demo struct {
	logger    ulogger.Logger
	settings  *settings.Settings
	chain     *blockchain.Server
	miner     *miner.Miner
	utxoStore utxo.Store
}

func New(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings) (*Demo, error) {
	utxoStore, err := factory.NewStore(ctx, logger, tSettings)
	if err != nil {
		return nil, errors.NewServiceError("failed to create utxo store", err)
	}

	m, err := miner.New(logger, tSettings)
	if err != nil {
		return nil, err
	}

	return &Demo{
		logger:    logger,
		settings:  tSettings,
		chain:     blockchain.New(logger, tSettings, utxoStore),
		miner:     m,
		utxoStore: utxoStore,
	}, nil
}

func (d *Demo) Health(ctx context.Context) (int, string, error) {
	return health.CheckAll(ctx, d.HealthChecks())
}

func (d *Demo) HealthChecks() []health.Check {
	return []health.Check{
		{Name: "Blockchain", Check: d.chain.Health},
		{Name: "Miner", Check: d.miner.Health},
	}
}

// Chain is the blockchain service blocks are submitted to.
func (d *Demo) Chain() *blockchain.Server {
	return d.chain
}

// Run mines and submits genesis, if the chain is still empty, and then opts.Blocks more blocks.
func (d *Demo) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Blocks < 0 {
		return nil, errors.NewInvalidArgumentError("number of blocks must not be negative, got %d", opts.Blocks)
	}

	difficulty, err := Difficulty(d.settings, opts.Difficulty)
	if err != nil {
		return nil, err
	}

	if err = d.miner.Start(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = d.miner.Stop(context.Background())
	}()

	limiter := rate.NewLimiter(rate.Inf, 1)
	if d.settings.Demo.BlockDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(d.settings.Demo.BlockDelay), 1)
	}

	d.logger.Infof("[Demo] mining %d blocks at difficulty %s with %d workers", opts.Blocks, difficulty, d.settings.Miner.Workers)

	params := d.settings.ChainCfgParams

	toMine := opts.Blocks
	if d.chain.Height() == 0 {
		toMine++
	}

	for i := 0; i < toMine; i++ {
		if err = limiter.Wait(ctx); err != nil {
			return nil, errors.NewContextCanceledError("demo stopped after %d blocks", i, err)
		}

		block := nextBlock(d.chain.Tip(), params.CoinbaseReward, d.settings.Demo.MinerAddress, params.GenesisData, difficulty)

		solution, err := d.miner.Mine(ctx, block)
		if err != nil {
			return nil, err
		}

		if err = d.chain.ProcessBlock(ctx, block); err != nil {
			return nil, err
		}

		d.logger.Infof("[Demo] block %d mined in %s after %d attempts", block.Index, solution.Duration, solution.Attempts)

		if opts.Out != nil {
			if err = printBlock(opts.Out, block); err != nil {
				return nil, err
			}
		}
	}

	unspent, err := d.chain.UnspentOutputs(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Blocks:  d.chain.Blocks(),
		Unspent: unspent,
	}, nil
}

// nextBlock builds the block that goes on top of tip, or the genesis block when tip is nil.
func nextBlock(tip *model.Block, reward uint64, minerAddress string, genesisData string, difficulty model.Target) *model.Block {
	now := fastime.Now().UnixMilli()

	if tip == nil {
		coinbase := model.NewCoinbaseTransaction(0, model.NewOutput("Alice", 50), model.NewOutput("Bob", 7))
		return model.NewBlock(0, now, chainhash.Hash{}, []byte(genesisData), []*model.Transaction{coinbase}, difficulty)
	}

	// the clock is cached and may not have moved since the previous block
	if now <= tip.Timestamp {
		now = tip.Timestamp + 1
	}

	index := tip.Index + 1
	coinbase := model.NewCoinbaseTransaction(index, model.NewOutput(minerAddress, reward))

	return model.NewBlock(index, now, tip.Hash(), []byte(fmt.Sprintf("Block %d", index)), []*model.Transaction{coinbase}, difficulty)
}

func printBlock(w io.Writer, block *model.Block) error {
	b, err := json.MarshalIndent(block, "", "  ")
	if err != nil {
		return errors.NewProcessingError("failed to marshal block %d", block.Index, err)
	}

	if _, err = fmt.Fprintf(w, "%s\n", b); err != nil {
		return errors.NewProcessingError("failed to print block %d", block.Index, err)
	}

	return nil
}
