package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestToMoney(t *testing.T) {
	chain := OptionChain{
		Calls: []OptionLeg{
			{Strike: 95, LastPrice: 7.2},
			{Strike: 100, LastPrice: 4.1},
			{Strike: 110, LastPrice: 1.3},
		},
		Puts: []OptionLeg{
			{Strike: 90, LastPrice: 1.1},
			{Strike: 98, LastPrice: 2.9},
		},
	}

	call := chain.NearestToMoneyCall(101)
	require.True(t, call.IsSome())
	assert.InDelta(t, 100.0, call.Unwrap().Strike, 1e-9)

	put := chain.NearestToMoneyPut(91)
	require.True(t, put.IsSome())
	assert.InDelta(t, 90.0, put.Unwrap().Strike, 1e-9)
}

func TestNearestToMoneyTieKeepsFirst(t *testing.T) {
	chain := OptionChain{
		Calls: []OptionLeg{
			{Strike: 98, LastPrice: 5},
			{Strike: 102, LastPrice: 3},
		},
	}

	// Both strikes are 2 away from spot; the earlier leg wins.
	leg := chain.NearestToMoneyCall(100)
	require.True(t, leg.IsSome())
	assert.InDelta(t, 98.0, leg.Unwrap().Strike, 1e-9)
}

func TestNearestToMoneyEmptyChain(t *testing.T) {
	chain := OptionChain{}

	assert.True(t, chain.NearestToMoneyCall(100).IsNone())
	assert.True(t, chain.NearestToMoneyPut(100).IsNone())
}
