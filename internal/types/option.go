package types

import (
	"math"

	"github.com/moznion/go-optional"
)

// StrategyType is the closed set of derivative strategy families the
// selector can propose. Adding a family means extending this enum and the
// selector's exhaustive switch, not comparing strings at call sites.
type StrategyType string

const (
	StrategyTypeCoveredCall StrategyType = "covered_call"
	StrategyTypePutSpread   StrategyType = "put_spread"
	StrategyTypeIronCondor  StrategyType = "iron_condor"
)

// AllStrategyTypes lists every strategy family, used for schema generation.
var AllStrategyTypes = []any{
	string(StrategyTypeCoveredCall),
	string(StrategyTypePutSpread),
	string(StrategyTypeIronCondor),
}

// OptionLeg is one row of an options-chain snapshot.
type OptionLeg struct {
	Strike            float64 `yaml:"strike" json:"strike" validate:"gt=0"`
	LastPrice         float64 `yaml:"last_price" json:"last_price" validate:"gte=0"`
	ImpliedVolatility float64 `yaml:"implied_volatility" json:"implied_volatility" validate:"gte=0"`
	Volume            float64 `yaml:"volume" json:"volume" validate:"gte=0"`
	OpenInterest      float64 `yaml:"open_interest" json:"open_interest" validate:"gte=0"`
	// DaysToExpiry is the snapshot's remaining lifetime in days.
	DaysToExpiry int `yaml:"days_to_expiry" json:"days_to_expiry" validate:"gte=0"`
}

// OptionChain is a snapshot of the call and put legs for one underlying,
// supplied by the market-data collaborator.
type OptionChain struct {
	Calls []OptionLeg `yaml:"calls" json:"calls"`
	Puts  []OptionLeg `yaml:"puts" json:"puts"`
}

// NearestToMoneyCall returns the call leg whose strike is closest to spot,
// or None when the chain carries no calls.
func (c OptionChain) NearestToMoneyCall(spot float64) optional.Option[OptionLeg] {
	return nearestToMoney(c.Calls, spot)
}

// NearestToMoneyPut returns the put leg whose strike is closest to spot,
// or None when the chain carries no puts.
func (c OptionChain) NearestToMoneyPut(spot float64) optional.Option[OptionLeg] {
	return nearestToMoney(c.Puts, spot)
}

func nearestToMoney(legs []OptionLeg, spot float64) optional.Option[OptionLeg] {
	if len(legs) == 0 {
		return optional.None[OptionLeg]()
	}

	best := legs[0]
	bestDiff := math.Abs(legs[0].Strike - spot)

	for _, leg := range legs[1:] {
		diff := math.Abs(leg.Strike - spot)
		if diff < bestDiff {
			best = leg
			bestDiff = diff
		}
	}

	return optional.Some(best)
}

// StrategyQuote is one candidate derivative strategy with its payoff estimate.
type StrategyQuote struct {
	Strategy   StrategyType `yaml:"strategy" json:"strategy"`
	EntryPrice float64      `yaml:"entry_price" json:"entry_price"`
	ExitPrice  float64      `yaml:"exit_price" json:"exit_price"`
	MaxProfit  float64      `yaml:"max_profit" json:"max_profit"`
	MaxLoss    float64      `yaml:"max_loss" json:"max_loss"`
	// ProbabilityOfProfit is a per-family heuristic, not a pricing model.
	ProbabilityOfProfit float64 `yaml:"probability_of_profit" json:"probability_of_profit"`
	// RiskReward is MaxProfit/MaxLoss; None when MaxLoss is 0 and the ratio
	// is undefined rather than computed.
	RiskReward        optional.Option[float64] `yaml:"risk_reward" json:"risk_reward"`
	DaysToExpiry      int                      `yaml:"days_to_expiry" json:"days_to_expiry"`
	ImpliedVolatility float64                  `yaml:"implied_volatility" json:"implied_volatility"`
}
