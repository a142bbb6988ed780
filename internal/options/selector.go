// Package options maps a signal plus a sentiment score and an options-chain
// snapshot to candidate strategy quotes. Exactly one strategy family is
// proposed per call; a missing required leg yields an empty quote list.
package options

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Sentiment bounds separating the bullish, bearish and neutral selection
// branches.
const (
	bullishSentimentMin = 0.6
	bearishSentimentMax = 0.4
)

// putSpreadWidth is the short strike's distance below the long strike as a
// fraction of the long strike.
const putSpreadWidth = 0.05

// ProbabilityModel supplies the probability-of-profit estimate per strategy
// family. The default is a fixed heuristic; a real pricing model can be
// plugged in without touching the selector.
type ProbabilityModel interface {
	ProbabilityOfProfit(strategy types.StrategyType, leg types.OptionLeg) float64
}

// HeuristicProbabilityModel returns fixed per-family constants. The covered
// call and iron condor values approximate a one-standard-deviation move;
// they encode no statistical model of the actual legs.
type HeuristicProbabilityModel struct{}

// ProbabilityOfProfit implements ProbabilityModel.
func (HeuristicProbabilityModel) ProbabilityOfProfit(strategy types.StrategyType, _ types.OptionLeg) float64 {
	switch strategy {
	case types.StrategyTypeCoveredCall:
		return 0.68
	case types.StrategyTypePutSpread:
		return 0.45
	case types.StrategyTypeIronCondor:
		return 0.68
	}

	return 0
}

// Selector proposes strategy quotes. It is stateless apart from the
// probability model.
type Selector struct {
	probability ProbabilityModel
}

// NewSelector creates a Selector with the default heuristic probability model.
func NewSelector() *Selector {
	return &Selector{probability: HeuristicProbabilityModel{}}
}

// NewSelectorWithProbabilityModel creates a Selector with a custom model.
func NewSelectorWithProbabilityModel(model ProbabilityModel) *Selector {
	return &Selector{probability: model}
}

// Select proposes quotes for exactly one strategy family:
//
//   - bullish trend and sentiment > 0.6: covered call on the nearest-to-money
//     call leg
//   - bearish trend and sentiment < 0.4: put spread on the nearest-to-money
//     put leg
//   - anything else: iron condor using both legs
//
// A missing required leg returns an empty list, never an error.
func (s *Selector) Select(sig types.Signal, sentiment float64, chain types.OptionChain, spot float64) []types.StrategyQuote {
	switch {
	case sig.Trend == types.TrendBullish && sentiment > bullishSentimentMin:
		return s.coveredCall(chain.NearestToMoneyCall(spot), spot)
	case sig.Trend == types.TrendBearish && sentiment < bearishSentimentMax:
		return s.putSpread(chain.NearestToMoneyPut(spot))
	default:
		return s.ironCondor(chain.NearestToMoneyCall(spot), chain.NearestToMoneyPut(spot), spot)
	}
}

func (s *Selector) coveredCall(callLeg optional.Option[types.OptionLeg], spot float64) []types.StrategyQuote {
	if callLeg.IsNone() {
		return nil
	}

	leg := callLeg.Unwrap()
	maxProfit := leg.LastPrice
	maxLoss := spot - leg.LastPrice

	return []types.StrategyQuote{{
		Strategy:            types.StrategyTypeCoveredCall,
		EntryPrice:          spot,
		ExitPrice:           leg.Strike,
		MaxProfit:           maxProfit,
		MaxLoss:             maxLoss,
		ProbabilityOfProfit: s.probability.ProbabilityOfProfit(types.StrategyTypeCoveredCall, leg),
		RiskReward:          riskReward(maxProfit, maxLoss),
		DaysToExpiry:        leg.DaysToExpiry,
		ImpliedVolatility:   leg.ImpliedVolatility,
	}}
}

func (s *Selector) putSpread(putLeg optional.Option[types.OptionLeg]) []types.StrategyQuote {
	if putLeg.IsNone() {
		return nil
	}

	leg := putLeg.Unwrap()
	maxProfit := leg.Strike*putSpreadWidth - leg.LastPrice
	maxLoss := leg.LastPrice

	return []types.StrategyQuote{{
		Strategy:            types.StrategyTypePutSpread,
		EntryPrice:          leg.Strike,
		ExitPrice:           leg.Strike * (1 - putSpreadWidth),
		MaxProfit:           maxProfit,
		MaxLoss:             maxLoss,
		ProbabilityOfProfit: s.probability.ProbabilityOfProfit(types.StrategyTypePutSpread, leg),
		RiskReward:          riskReward(maxProfit, maxLoss),
		DaysToExpiry:        leg.DaysToExpiry,
		ImpliedVolatility:   leg.ImpliedVolatility,
	}}
}

func (s *Selector) ironCondor(callLeg, putLeg optional.Option[types.OptionLeg], spot float64) []types.StrategyQuote {
	if callLeg.IsNone() || putLeg.IsNone() {
		return nil
	}

	call := callLeg.Unwrap()
	put := putLeg.Unwrap()
	maxProfit := call.LastPrice + put.LastPrice
	maxLoss := call.Strike - put.Strike

	return []types.StrategyQuote{{
		Strategy:            types.StrategyTypeIronCondor,
		EntryPrice:          spot,
		ExitPrice:           spot,
		MaxProfit:           maxProfit,
		MaxLoss:             maxLoss,
		ProbabilityOfProfit: s.probability.ProbabilityOfProfit(types.StrategyTypeIronCondor, call),
		RiskReward:          riskReward(maxProfit, maxLoss),
		DaysToExpiry:        minDays(call.DaysToExpiry, put.DaysToExpiry),
		ImpliedVolatility:   (call.ImpliedVolatility + put.ImpliedVolatility) / 2,
	}}
}

// riskReward is None when maxLoss is 0: the ratio is undefined, not infinite.
func riskReward(maxProfit, maxLoss float64) optional.Option[float64] {
	if maxLoss == 0 {
		return optional.None[float64]()
	}

	return optional.Some(maxProfit / maxLoss)
}

func minDays(a, b int) int {
	if a < b {
		return a
	}

	return b
}
