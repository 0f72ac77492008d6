package model

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/errors"
)

// Target is a 256 bit unsigned integer in big-endian byte order. A block hash meets the target
// when, read as an integer, it is less than or equal to it.
type Target [32]byte

// MaxTarget is met by every hash.
var MaxTarget = func() Target {
	var t Target
	for i := range t {
		t[i] = 0xff
	}

	return t
}()

// NewTargetFromHex parses a big-endian hex string of at most 64 digits, padding it on the left with zeros.
func NewTargetFromHex(s string) (Target, error) {
	var t Target

	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return t, errors.NewInvalidArgumentError("invalid target %q", s, err)
	}

	if len(b) > len(t) {
		return t, errors.NewInvalidArgumentError("target %q is wider than 256 bits", s)
	}

	copy(t[len(t)-len(b):], b)

	return t, nil
}

func NewTargetFromBig(n *big.Int) (Target, error) {
	var t Target

	if n.Sign() < 0 || n.BitLen() > 256 {
		return t, errors.NewInvalidArgumentError("target %s does not fit in 256 unsigned bits", n)
	}

	n.FillBytes(t[:])

	return t, nil
}

func NewTargetFromUint64(n uint64) Target {
	t, _ := NewTargetFromBig(new(big.Int).SetUint64(n))
	return t
}

func (t Target) Big() *big.Int {
	return new(big.Int).SetBytes(t[:])
}

func (t Target) String() string {
	return hex.EncodeToString(t[:])
}

// CheckDifficulty reports whether hash, read as a big-endian integer from its first byte, is at most
// target.
func CheckDifficulty(hash chainhash.Hash, target Target) bool {
	for i := 0; i < chainhash.HashSize; i++ {
		if hash[i] != target[i] {
			return hash[i] < target[i]
		}
	}

	return true
}
