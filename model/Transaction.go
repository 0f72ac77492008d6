package model

import (
	"encoding/binary"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/util"
)

// Transaction moves value from the outputs it spends to the outputs it creates. A transaction
// without inputs is a coinbase: it creates new value and must be the first transaction of a block.
type Transaction struct {
	Inputs  []*Input
	Outputs []*Output
	// Height is the index of the block a coinbase is minted in, enforced by the ledger. It is part
	// of the txid so two coinbases paying the same outputs in different blocks never create the
	// same UTXO.
	Height uint32
}

func NewTransaction(inputs []*Input, outputs []*Output) *Transaction {
	return &Transaction{
		Inputs:  inputs,
		Outputs: outputs,
	}
}

func NewCoinbaseTransaction(height uint32, outputs ...*Output) *Transaction {
	return &Transaction{
		Outputs: outputs,
		Height:  height,
	}
}

func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 0
}

func (tx *Transaction) Bytes() []byte {
	b := make([]byte, 0, 256)

	b = append(b, bt.VarInt(uint64(len(tx.Inputs))).Bytes()...)
	for _, input := range tx.Inputs {
		b = append(b, input.Bytes()...)
	}

	b = append(b, bt.VarInt(uint64(len(tx.Outputs))).Bytes()...)
	for _, output := range tx.Outputs {
		b = append(b, output.Bytes()...)
	}

	b = binary.LittleEndian.AppendUint32(b, tx.Height)

	return b
}

func (tx *Transaction) TxID() chainhash.Hash {
	return HashOf(tx)
}

// SpendOutput returns an Input spending the output at position vout of this transaction.
func (tx *Transaction) SpendOutput(vout uint32) (*Input, error) {
	if int(vout) >= len(tx.Outputs) {
		return nil, errors.NewInvalidArgumentError("output %d does not exist, tx has %d outputs", vout, len(tx.Outputs))
	}

	return &Input{
		PrevTxID: tx.TxID(),
		Vout:     vout,
		Output:   *tx.Outputs[vout],
	}, nil
}

// InputHashes returns the UTXO hashes this transaction spends. Spending the same UTXO twice
// within the transaction is an ERR_TX_INVALID_INPUT error.
func (tx *Transaction) InputHashes() (mapset.Set[chainhash.Hash], error) {
	hashes := mapset.NewThreadUnsafeSetWithSize[chainhash.Hash](len(tx.Inputs))

	for _, input := range tx.Inputs {
		utxoHash := input.UTXOHash()
		if !hashes.Add(utxoHash) {
			return nil, errors.NewTxInvalidInputError("utxo %s is spent twice in tx %s", utxoHash, tx.TxID())
		}
	}

	return hashes, nil
}

// OutputHashes returns the UTXO hashes this transaction creates.
func (tx *Transaction) OutputHashes() (mapset.Set[chainhash.Hash], error) {
	txid := tx.TxID()
	hashes := mapset.NewThreadUnsafeSetWithSize[chainhash.Hash](len(tx.Outputs))

	for i, output := range tx.Outputs {
		vout, err := safeconversion.IntToUint32(i)
		if err != nil {
			return nil, errors.NewTxInvalidError("too many outputs in tx %s", txid, err)
		}

		hashes.Add(util.UTXOHash(&txid, vout, output.ToAddr, output.Value))
	}

	return hashes, nil
}

// InputValue is the sum of the values of the spent outputs.
func (tx *Transaction) InputValue() (uint64, error) {
	values := make([]uint64, 0, len(tx.Inputs))
	for _, input := range tx.Inputs {
		values = append(values, input.Value)
	}

	return util.SafeSumUint64(values...)
}

// OutputValue is the sum of the values of the created outputs.
func (tx *Transaction) OutputValue() (uint64, error) {
	values := make([]uint64, 0, len(tx.Outputs))
	for _, output := range tx.Outputs {
		values = append(values, output.Value)
	}

	return util.SafeSumUint64(values...)
}
