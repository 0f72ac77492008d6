package model

import (
	"encoding/binary"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/util"
)

// Output is an amount of value assigned to an address.
type Output struct {
	ToAddr string
	Value  uint64
}

func NewOutput(toAddr string, value uint64) *Output {
	return &Output{ToAddr: toAddr, Value: value}
}

func (o *Output) Bytes() []byte {
	b := make([]byte, 0, len(o.ToAddr)+9+8)
	b = append(b, bt.VarInt(uint64(len(o.ToAddr))).Bytes()...)
	b = append(b, o.ToAddr...)
	b = binary.LittleEndian.AppendUint64(b, o.Value)

	return b
}

// Input spends an Output created earlier, identified by the transaction that created it and its
// position in that transaction's outputs.
type Input struct {
	PrevTxID chainhash.Hash
	Vout     uint32
	Output
}

func (in *Input) Bytes() []byte {
	b := make([]byte, 0, chainhash.HashSize+5+len(in.ToAddr)+9+8)
	b = append(b, in.PrevTxID.CloneBytes()...)
	b = append(b, bt.VarInt(in.Vout).Bytes()...)
	b = append(b, in.Output.Bytes()...)

	return b
}

// UTXOHash is the hash of the unspent output this input consumes.
func (in *Input) UTXOHash() chainhash.Hash {
	return util.UTXOHash(&in.PrevTxID, in.Vout, in.ToAddr, in.Value)
}
