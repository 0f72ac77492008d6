package blockchain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/model"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/mrlucciola/pow-blockchain/util"
)

// Blockchain is the ledger: the list of accepted blocks and the UTXO set they produced.
// It does no locking of its own, Server serialises access to it.
type Blockchain struct {
	logger    ulogger.Logger
	blocks    []*model.Block
	utxoStore utxo.Store
}

func NewBlockchain(logger ulogger.Logger, utxoStore utxo.Store) *Blockchain {
	return &Blockchain{
		logger:    logger,
		utxoStore: utxoStore,
	}
}

// UpdateWithBlock validates block against the chain and, only if every check passes, applies its
// transactions to the UTXO set and appends it. A rejected block leaves the chain and the UTXO set
// exactly as they were.
//
// Checks, in order:
//   - the index is the current chain length
//   - the hash meets the block's difficulty
//   - genesis: the previous hash is all zeros
//   - otherwise: the timestamp is after the tip's, then the previous hash is the tip's hash
//   - if there are transactions: the first one is a coinbase minted at the block's index; every other one spends only unspent
//     outputs not already spent in this block and creates no more than it spends; the coinbase
//     creates at least the fees of the block
func (b *Blockchain) UpdateWithBlock(ctx context.Context, block *model.Block) error {
	height := len(b.blocks)

	if int64(block.Index) != int64(height) {
		return withBlockData(errors.NewBlockMismatchedIndexError("block index %d, expected %d", block.Index, height), block)
	}

	hash := block.CalculateHash()
	if !model.CheckDifficulty(hash, block.Difficulty) {
		return withBlockData(errors.NewBlockInvalidHashError("block hash %s above target %s", hash, block.Difficulty), block)
	}

	if height == 0 {
		if !block.PrevBlockHash.IsEqual(&chainhash.Hash{}) {
			return withBlockData(errors.NewBlockInvalidGenesisError("genesis block has previous hash %s", block.PrevBlockHash), block)
		}
	} else {
		tip := b.blocks[height-1]

		if block.Timestamp <= tip.Timestamp {
			return withBlockData(errors.NewBlockAchronTimestampError("block timestamp %d is not after %d", block.Timestamp, tip.Timestamp), block)
		}

		tipHash := tip.Hash()
		if !block.PrevBlockHash.IsEqual(&tipHash) {
			return withBlockData(errors.NewBlockMismatchedPrevHashError("block previous hash %s, expected %s", block.PrevBlockHash, tipHash), block)
		}
	}

	if len(block.Transactions) > 0 {
		spent, created, err := b.validateTransactions(ctx, block)
		if err != nil {
			return withBlockData(err, block)
		}

		if err = b.utxoStore.Apply(ctx, spent, created); err != nil {
			return withBlockData(errors.NewStorageError("failed to apply block %d to the utxo store", block.Index, err), block)
		}
	}

	block.SetHash(hash)
	b.blocks = append(b.blocks, block)

	b.logger.Debugf("[Blockchain] accepted block %d %s with %d transactions", block.Index, hash, len(block.Transactions))

	return nil
}

// validateTransactions checks the transactions of block against the UTXO set without changing it,
// returning the hashes the block spends and creates.
func (b *Blockchain) validateTransactions(ctx context.Context, block *model.Block) ([]chainhash.Hash, []chainhash.Hash, error) {
	coinbase := block.Transactions[0]
	if !coinbase.IsCoinbase() {
		return nil, nil, errors.NewTxInvalidCoinbaseError("first transaction %s of block %d is not a coinbase", coinbase.TxID(), block.Index)
	}

	// the height keeps coinbase txids, and so their utxo hashes, unique across blocks
	if coinbase.Height != block.Index {
		return nil, nil, errors.NewTxInvalidCoinbaseError("coinbase %s of block %d has height %d", coinbase.TxID(), block.Index, coinbase.Height)
	}

	blockSpent := mapset.NewThreadUnsafeSet[chainhash.Hash]()
	blockCreated := mapset.NewThreadUnsafeSet[chainhash.Hash]()

	var totalFee uint64

	for _, tx := range block.Transactions[1:] {
		inputHashes, err := tx.InputHashes()
		if err != nil {
			return nil, nil, err
		}

		for _, utxoHash := range inputHashes.ToSlice() {
			if blockSpent.Contains(utxoHash) {
				return nil, nil, errors.NewTxInvalidInputError("utxo %s spent twice in block %d", utxoHash, block.Index)
			}

			exists, err := b.utxoStore.Exists(ctx, utxoHash)
			if err != nil {
				return nil, nil, errors.NewStorageError("failed to look up utxo %s", utxoHash, err)
			}

			if !exists {
				return nil, nil, errors.NewTxInvalidInputError("utxo %s spent by tx %s is not unspent", utxoHash, tx.TxID())
			}
		}

		inputValue, err := tx.InputValue()
		if err != nil {
			return nil, nil, err
		}

		outputValue, err := tx.OutputValue()
		if err != nil {
			return nil, nil, err
		}

		if outputValue > inputValue {
			return nil, nil, errors.NewTxInsufficientInputValueError("tx %s creates %d from inputs worth %d", tx.TxID(), outputValue, inputValue)
		}

		if totalFee, err = util.SafeAddUint64(totalFee, inputValue-outputValue); err != nil {
			return nil, nil, err
		}

		outputHashes, err := tx.OutputHashes()
		if err != nil {
			return nil, nil, err
		}

		blockSpent = blockSpent.Union(inputHashes)
		blockCreated = blockCreated.Union(outputHashes)
	}

	coinbaseValue, err := coinbase.OutputValue()
	if err != nil {
		return nil, nil, err
	}

	if coinbaseValue < totalFee {
		return nil, nil, errors.NewTxInvalidCoinbaseError("coinbase %s creates %d, less than the block fees of %d", coinbase.TxID(), coinbaseValue, totalFee)
	}

	coinbaseHashes, err := coinbase.OutputHashes()
	if err != nil {
		return nil, nil, err
	}

	blockCreated = blockCreated.Union(coinbaseHashes)

	return blockSpent.ToSlice(), blockCreated.ToSlice(), nil
}

func withBlockData(err error, block *model.Block) error {
	var tErr *errors.Error
	if errors.As(err, &tErr) {
		tErr.SetData("block_index", block.Index)
	}

	return err
}

// Len is the number of accepted blocks.
func (b *Blockchain) Len() int {
	return len(b.blocks)
}

// Blocks returns the accepted blocks, genesis first. The slice is a copy, the blocks are not.
func (b *Blockchain) Blocks() []*model.Block {
	blocks := make([]*model.Block, len(b.blocks))
	copy(blocks, b.blocks)

	return blocks
}

// Tip returns the last accepted block, or nil for an empty chain.
func (b *Blockchain) Tip() *model.Block {
	if len(b.blocks) == 0 {
		return nil
	}

	return b.blocks[len(b.blocks)-1]
}

func (b *Blockchain) BlockAt(index uint32) (*model.Block, error) {
	if int64(index) >= int64(len(b.blocks)) {
		return nil, errors.NewNotFoundError("block %d not found, chain has %d blocks", index, len(b.blocks))
	}

	return b.blocks[index], nil
}

func (b *Blockchain) UnspentOutputs(ctx context.Context) ([]chainhash.Hash, error) {
	return b.utxoStore.Hashes(ctx)
}

func (b *Blockchain) IsUnspent(ctx context.Context, hash chainhash.Hash) (bool, error) {
	return b.utxoStore.Exists(ctx, hash)
}
