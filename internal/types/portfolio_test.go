package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionRisk(t *testing.T) {
	position := Position{Quantity: 100, AvgEntryPrice: 100, CurrentPrice: 110, StopLoss: 95}
	assert.InDelta(t, 1500.0, position.Risk(), 1e-9)

	// A stop above the current price still measures absolute distance.
	inverted := Position{Quantity: 10, CurrentPrice: 95, StopLoss: 100}
	assert.InDelta(t, 50.0, inverted.Risk(), 1e-9)
}

func TestPositionRiskZeroOnBadInputs(t *testing.T) {
	assert.Zero(t, Position{Quantity: 100, CurrentPrice: 110}.Risk())
	assert.Zero(t, Position{Quantity: 100, StopLoss: 95}.Risk())
	assert.Zero(t, Position{CurrentPrice: 110, StopLoss: 95}.Risk())
}

func TestPortfolioAggregateRisk(t *testing.T) {
	portfolio := Portfolio{
		Cash:           10000,
		PortfolioValue: 100000,
		Positions: map[string]Position{
			"AAPL": {Quantity: 100, CurrentPrice: 110, StopLoss: 105},
			"MSFT": {Quantity: 50, CurrentPrice: 300, StopLoss: 290},
		},
	}

	assert.InDelta(t, 1000.0, portfolio.AggregateRisk(), 1e-9)
	assert.Zero(t, Portfolio{}.AggregateRisk())
}

func TestTradeCandidateValidate(t *testing.T) {
	valid := TradeCandidate{
		Ticker:   "AAPL",
		Action:   TradeActionBuy,
		Price:    100,
		Quantity: 10,
		StopLoss: 95,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*TradeCandidate)
	}{
		{name: "missing ticker", mutate: func(c *TradeCandidate) { c.Ticker = "" }},
		{name: "unknown action", mutate: func(c *TradeCandidate) { c.Action = "SHORT" }},
		{name: "zero price", mutate: func(c *TradeCandidate) { c.Price = 0 }},
		{name: "negative quantity", mutate: func(c *TradeCandidate) { c.Quantity = -1 }},
		{name: "zero stop", mutate: func(c *TradeCandidate) { c.StopLoss = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := valid
			tt.mutate(&candidate)
			assert.Error(t, candidate.Validate())
		})
	}
}
