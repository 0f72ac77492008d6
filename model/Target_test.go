package model

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashFromHex builds a digest from big-endian hex, left padded with zeros.
func hashFromHex(t *testing.T, s string) chainhash.Hash {
	t.Helper()

	b, err := hex.DecodeString(strings.Repeat("0", 2*chainhash.HashSize-len(s)) + s)
	require.NoError(t, err)

	var h chainhash.Hash
	copy(h[:], b)

	return h
}

func TestNewTargetFromHex(t *testing.T) {
	t.Run("pads on the left", func(t *testing.T) {
		target, err := NewTargetFromHex("0xefffffffffffffffffffffffffff")
		require.NoError(t, err)

		assert.Equal(t, strings.Repeat("00", 18)+"ef"+strings.Repeat("ff", 13), target.String())
		assert.Equal(t, 0, target.Big().Cmp(new(big.Int).SetBytes(target[:])))
	})

	t.Run("odd length", func(t *testing.T) {
		target, err := NewTargetFromHex("fff")
		require.NoError(t, err)
		assert.Equal(t, NewTargetFromUint64(0xfff), target)
	})

	t.Run("too wide", func(t *testing.T) {
		_, err := NewTargetFromHex("01" + MaxTarget.String())
		require.Error(t, err)
	})

	t.Run("not hex", func(t *testing.T) {
		_, err := NewTargetFromHex("zz")
		require.Error(t, err)
	})
}

func TestNewTargetFromBig(t *testing.T) {
	limit := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 240), big.NewInt(1))

	target, err := NewTargetFromBig(limit)
	require.NoError(t, err)
	assert.Equal(t, "0000ffff", target.String()[:8])

	_, err = NewTargetFromBig(new(big.Int).Lsh(big.NewInt(1), 256))
	require.Error(t, err)

	_, err = NewTargetFromBig(big.NewInt(-1))
	require.Error(t, err)
}

func TestCheckDifficulty(t *testing.T) {
	target, err := NewTargetFromHex("00000fffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"below", "000001ffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", true},
		{"equal", "00000fffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", true},
		{"one above", "0000100000000000000000000000000000000000000000000000000000000000", false},
		{"differs in the last byte", "00000ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe", true},
		{"zero", "0000000000000000000000000000000000000000000000000000000000000000", true},
		{"max", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckDifficulty(hashFromHex(t, tt.hash), target))
		})
	}

	t.Run("zero target only accepts the zero hash", func(t *testing.T) {
		assert.True(t, CheckDifficulty(chainhash.Hash{}, Target{}))
		assert.False(t, CheckDifficulty(hashFromHex(t, "01"), Target{}))
	})

	t.Run("first byte is the most significant", func(t *testing.T) {
		var hash chainhash.Hash
		hash[0] = 0xff

		target := MaxTarget
		target[0] = 0x00

		assert.False(t, CheckDifficulty(hash, target))

		hash = chainhash.Hash{}
		hash[chainhash.HashSize-1] = 0xff

		assert.True(t, CheckDifficulty(hash, target))
	})

	t.Run("agrees with big.Int comparison", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			var hash chainhash.Hash

			var target Target

			_, _ = rand.Read(hash[:])
			_, _ = rand.Read(target[:])

			// force some shared leading bytes so the comparison does not always stop at byte 0
			copy(target[:i%8], hash[:i%8])

			hashInt := new(big.Int).SetBytes(hash[:])
			assert.Equal(t, hashInt.Cmp(target.Big()) <= 0, CheckDifficulty(hash, target))
		}
	})
}
