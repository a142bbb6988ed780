package backtest

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Rule is the closed set of replay strategies. Adding a rule means extending
// this enum and the exhaustive switches below; there is no string dispatch at
// call sites.
type Rule string

const (
	// RuleMomentum enters on the bullish SMA cross and exits on the bearish
	// cross.
	RuleMomentum Rule = "momentum"
	// RuleMeanReversion enters when RSI drops below the oversold threshold
	// and exits when it rises above the overbought threshold.
	RuleMeanReversion Rule = "mean_reversion"
)

// AllRules lists every replay rule, used for CLI validation and schema
// generation.
var AllRules = []Rule{RuleMomentum, RuleMeanReversion}

// Valid reports whether r names a known rule.
func (r Rule) Valid() bool {
	switch r {
	case RuleMomentum, RuleMeanReversion:
		return true
	}

	return false
}

// WarmUp is the number of bars the rule needs before its first evaluation:
// the longest rolling window its indicators consume.
func (r Rule) WarmUp(cfg RuleParams) int {
	switch r {
	case RuleMomentum:
		return cfg.SMALongWindow
	case RuleMeanReversion:
		return cfg.RSIPeriod + 1
	}

	return 0
}

// RuleParams carries the per-rule thresholds and the window sizes the warm-up
// depends on.
type RuleParams struct {
	SMALongWindow int     `yaml:"sma_long_window"`
	RSIPeriod     int     `yaml:"rsi_period"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
	RSIOverbought float64 `yaml:"rsi_overbought"`
}

// DefaultRuleParams returns the conventional 50-bar cross window and 14-bar
// RSI with 30/70 thresholds.
func DefaultRuleParams() RuleParams {
	return RuleParams{
		SMALongWindow: 50,
		RSIPeriod:     14,
		RSIOversold:   30,
		RSIOverbought: 70,
	}
}

// Evaluate maps the previous and current indicator points to an action.
// Cross detection is edge-triggered: the momentum rule only enters on the
// single bar where the ordering flips.
func (r Rule) Evaluate(prev optional.Option[types.IndicatorPoint], curr types.IndicatorPoint, state PositionState, params RuleParams) Action {
	switch r {
	case RuleMomentum:
		return evaluateMomentum(prev, curr, state)
	case RuleMeanReversion:
		return evaluateMeanReversion(curr, state, params)
	}

	return ActionHold
}

func evaluateMomentum(prev optional.Option[types.IndicatorPoint], curr types.IndicatorPoint, state PositionState) Action {
	if prev.IsNone() {
		return ActionHold
	}

	p := prev.Unwrap()

	if p.SMAShort.IsNone() || p.SMALong.IsNone() || curr.SMAShort.IsNone() || curr.SMALong.IsNone() {
		return ActionHold
	}

	prevShort := p.SMAShort.Unwrap()
	prevLong := p.SMALong.Unwrap()
	currShort := curr.SMAShort.Unwrap()
	currLong := curr.SMALong.Unwrap()

	switch state {
	case PositionStateFlat:
		if prevShort <= prevLong && currShort > currLong {
			return ActionEnter
		}
	case PositionStateLong:
		if prevShort >= prevLong && currShort < currLong {
			return ActionExit
		}
	}

	return ActionHold
}

func evaluateMeanReversion(curr types.IndicatorPoint, state PositionState, params RuleParams) Action {
	if curr.RSI.IsNone() {
		return ActionHold
	}

	rsi := curr.RSI.Unwrap()

	switch state {
	case PositionStateFlat:
		if rsi < params.RSIOversold {
			return ActionEnter
		}
	case PositionStateLong:
		if rsi > params.RSIOverbought {
			return ActionExit
		}
	}

	return ActionHold
}
