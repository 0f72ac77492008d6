package chaincfg

import (
	"fmt"
	"math/big"
)

// These variables are the proof-of-work limits for each default network.
var (
	// bigOne is 1 represented as a big.Int. It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest block hash accepted by default on the main
	// network. It is the value 2^240 - 1, i.e. two leading zero bytes.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 240), bigOne)

	// testNetPowLimit is 2^248 - 1, one leading zero byte.
	testNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 248), bigOne)

	// regressionPowLimit is 2^255 - 1, so roughly every second hash qualifies.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// Params defines a network by its parameters. Blocks carry their own
// difficulty target, PowLimit is the one used by the miner and the demo
// driver when none is given.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// CoinbaseReward is what a miner pays itself in the coinbase of every
	// block after genesis.
	CoinbaseReward uint64

	// GenesisData is the payload of the genesis block.
	GenesisData string
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:           "mainnet",
	PowLimit:       mainPowLimit,
	CoinbaseReward: 50,
	GenesisData:    "Genesis block",
}

// TestNetParams defines the network parameters for the test network.
var TestNetParams = Params{
	Name:           "testnet",
	PowLimit:       testNetPowLimit,
	CoinbaseReward: 50,
	GenesisData:    "Genesis block",
}

// RegressionNetParams defines the network parameters for the regression test
// network. Mining is close to free, which is what unit tests want.
var RegressionNetParams = Params{
	Name:           "regtest",
	PowLimit:       regressionPowLimit,
	CoinbaseReward: 50,
	GenesisData:    "Genesis block",
}

func GetChainParams(network string) (*Params, error) {
	switch network {
	case "mainnet":
		return &MainNetParams, nil
	case "testnet":
		return &TestNetParams, nil
	case "regtest":
		return &RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %s", network)
	}
}
