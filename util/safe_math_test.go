package util

import (
	"math"
	"testing"

	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeAddUint64(t *testing.T) {
	sum, err := SafeAddUint64(50, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(57), sum)

	sum, err = SafeAddUint64(math.MaxUint64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = SafeAddUint64(math.MaxUint64, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTxValueOverflow))
}

func TestSafeSumUint64(t *testing.T) {
	sum, err := SafeSumUint64()
	require.NoError(t, err)
	assert.Zero(t, sum)

	sum, err = SafeSumUint64(360, 12, 536)
	require.NoError(t, err)
	assert.Equal(t, uint64(908), sum)

	_, err = SafeSumUint64(1, math.MaxUint64/2, math.MaxUint64/2+1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTxValueOverflow))
}
