package model

import (
	"encoding/binary"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Block struct {
	// Index is the position of the block in the chain, 0 for the genesis block.
	Index uint32

	// Timestamp is the creation time in unix milliseconds.
	Timestamp int64

	// PrevBlockHash is the hash of the previous block, all zeros for the genesis block.
	PrevBlockHash chainhash.Hash

	Nonce uint64

	// Data is an application defined payload.
	Data []byte

	// Transactions is empty or starts with a coinbase.
	Transactions []*Transaction

	Difficulty Target

	// local
	hash chainhash.Hash
}

func NewBlock(index uint32, timestamp int64, prevBlockHash chainhash.Hash, data []byte, transactions []*Transaction, difficulty Target) *Block {
	return &Block{
		Index:         index,
		Timestamp:     timestamp,
		PrevBlockHash: prevBlockHash,
		Data:          data,
		Transactions:  transactions,
		Difficulty:    difficulty,
	}
}

// Bytes is the canonical serialisation of the block. The cached hash is not part of it.
func (b *Block) Bytes() []byte {
	return b.bytesWithNonce(b.Nonce)
}

func (b *Block) bytesWithNonce(nonce uint64) []byte {
	blockBytes := make([]byte, 0, 4+8+chainhash.HashSize+8+9+len(b.Data)+9+len(b.Transactions)*128+len(b.Difficulty))

	blockBytes = binary.LittleEndian.AppendUint32(blockBytes, b.Index)
	//nolint:gosec // timestamps are serialised as their two's complement bits
	blockBytes = binary.LittleEndian.AppendUint64(blockBytes, uint64(b.Timestamp))
	blockBytes = append(blockBytes, b.PrevBlockHash.CloneBytes()...)
	blockBytes = binary.LittleEndian.AppendUint64(blockBytes, nonce)

	blockBytes = append(blockBytes, bt.VarInt(uint64(len(b.Data))).Bytes()...)
	blockBytes = append(blockBytes, b.Data...)

	blockBytes = append(blockBytes, bt.VarInt(uint64(len(b.Transactions))).Bytes()...)
	for _, tx := range b.Transactions {
		blockBytes = append(blockBytes, tx.Bytes()...)
	}

	blockBytes = append(blockBytes, b.Difficulty[:]...)

	return blockBytes
}

// CalculateHash returns a freshly computed hash of the block. The cached hash is left alone.
func (b *Block) CalculateHash() chainhash.Hash {
	return HashOf(b)
}

// CalculateHashWithNonce returns the hash the block would have with the given nonce. It only reads
// the block, so several goroutines can search different nonces at once.
func (b *Block) CalculateHashWithNonce(nonce uint64) chainhash.Hash {
	return chainhash.HashH(b.bytesWithNonce(nonce))
}

// Hash returns the cached hash, set by mining or SetHash. It is all zeros until then.
func (b *Block) Hash() chainhash.Hash {
	return b.hash
}

func (b *Block) SetHash(hash chainhash.Hash) {
	b.hash = hash
}

// HasMetTargetDifficulty checks a freshly computed hash of the block against its difficulty.
func (b *Block) HasMetTargetDifficulty() (bool, chainhash.Hash) {
	hash := b.CalculateHash()
	return CheckDifficulty(hash, b.Difficulty), hash
}

func (b *Block) IsGenesis() bool {
	return b.Index == 0
}

// Mine increments the nonce, starting from its current value, until the block hash meets the
// difficulty and then caches that hash. There is no limit on the number of attempts.
func (b *Block) Mine() {
	for {
		if ok, hash := b.HasMetTargetDifficulty(); ok {
			b.hash = hash
			return
		}

		b.Nonce++
	}
}

type outputJSON struct {
	ToAddr string `json:"to_addr"`
	Value  uint64 `json:"value"`
}

type inputJSON struct {
	PrevTxID string `json:"prev_txid"`
	Vout     uint32 `json:"vout"`
	ToAddr   string `json:"to_addr"`
	Value    uint64 `json:"value"`
}

type transactionJSON struct {
	TxID    string       `json:"txid"`
	Height  uint32       `json:"height,omitempty"`
	Inputs  []inputJSON  `json:"inputs"`
	Outputs []outputJSON `json:"outputs"`
}

type blockJSON struct {
	Index         uint32            `json:"index"`
	Timestamp     int64             `json:"timestamp"`
	Hash          string            `json:"hash"`
	PrevBlockHash string            `json:"prev_block_hash"`
	Nonce         uint64            `json:"nonce"`
	Data          string            `json:"data"`
	Transactions  []transactionJSON `json:"transactions"`
	Difficulty    string            `json:"difficulty"`
}

func (tx *Transaction) toJSON() transactionJSON {
	j := transactionJSON{
		TxID:    tx.TxID().String(),
		Inputs:  make([]inputJSON, 0, len(tx.Inputs)),
		Outputs: make([]outputJSON, 0, len(tx.Outputs)),
	}

	if tx.IsCoinbase() {
		j.Height = tx.Height
	}

	for _, input := range tx.Inputs {
		j.Inputs = append(j.Inputs, inputJSON{
			PrevTxID: input.PrevTxID.String(),
			Vout:     input.Vout,
			ToAddr:   input.ToAddr,
			Value:    input.Value,
		})
	}

	for _, output := range tx.Outputs {
		j.Outputs = append(j.Outputs, outputJSON{ToAddr: output.ToAddr, Value: output.Value})
	}

	return j
}

func (b *Block) MarshalJSON() ([]byte, error) {
	j := blockJSON{
		Index:         b.Index,
		Timestamp:     b.Timestamp,
		Hash:          b.hash.String(),
		PrevBlockHash: b.PrevBlockHash.String(),
		Nonce:         b.Nonce,
		Data:          string(b.Data),
		Transactions:  make([]transactionJSON, 0, len(b.Transactions)),
		Difficulty:    b.Difficulty.String(),
	}

	for _, tx := range b.Transactions {
		j.Transactions = append(j.Transactions, tx.toJSON())
	}

	return json.Marshal(j)
}

func (b *Block) String() string {
	return fmt.Sprintf("Block[%d]: %s at %d with %d txs, nonce %d", b.Index, b.hash, b.Timestamp, len(b.Transactions), b.Nonce)
}
