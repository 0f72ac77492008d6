package util

import (
	"math/bits"

	"github.com/mrlucciola/pow-blockchain/errors"
)

// SafeAddUint64 returns a + b, or an ERR_TX_VALUE_OVERFLOW error if the sum does not fit in a uint64.
func SafeAddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.NewTxValueOverflowError("%d + %d overflows uint64", a, b)
	}

	return sum, nil
}

// SafeSumUint64 adds up values, failing on the first overflow.
func SafeSumUint64(values ...uint64) (uint64, error) {
	var (
		total uint64
		err   error
	)

	for _, v := range values {
		if total, err = SafeAddUint64(total, v); err != nil {
			return 0, err
		}
	}

	return total, nil
}
