package util

import (
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// UTXOHash returns the hash identifying the output at position vout of the transaction txid.
// The hash is calculated over the txid, the output index, the length prefixed address and the value.
func UTXOHash(txid *chainhash.Hash, vout uint32, toAddr string, value uint64) chainhash.Hash {
	utxoHash := make([]byte, 0, chainhash.HashSize+len(toAddr)+32)
	utxoHash = append(utxoHash, txid.CloneBytes()...)
	utxoHash = append(utxoHash, bt.VarInt(vout).Bytes()...)
	utxoHash = append(utxoHash, bt.VarInt(uint64(len(toAddr))).Bytes()...)
	utxoHash = append(utxoHash, toAddr...)
	utxoHash = append(utxoHash, bt.VarInt(value).Bytes()...)

	return chainhash.HashH(utxoHash)
}
