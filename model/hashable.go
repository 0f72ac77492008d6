package model

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Hashable is anything with a canonical byte serialisation.
type Hashable interface {
	Bytes() []byte
}

// HashOf returns the single SHA-256 digest of the canonical bytes of h.
func HashOf(h Hashable) chainhash.Hash {
	return chainhash.HashH(h.Bytes())
}
