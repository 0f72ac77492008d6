package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChainParams(t *testing.T) {
	tests := []struct {
		network string
		bitLen  int
	}{
		{"mainnet", 240},
		{"testnet", 248},
		{"regtest", 255},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			params, err := GetChainParams(tt.network)
			require.NoError(t, err)

			assert.Equal(t, tt.network, params.Name)
			assert.Equal(t, tt.bitLen, params.PowLimit.BitLen())
			assert.NotZero(t, params.CoinbaseReward)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := GetChainParams("stn")
		require.Error(t, err)
	})
}
