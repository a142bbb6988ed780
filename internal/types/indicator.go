package types

import (
	"github.com/moznion/go-optional"
)

// IndicatorPoint holds the derived indicator values for one bar of a price
// series. A None value means the indicator's rolling window was not yet
// satisfied at that bar; it is never a zero-by-accident.
type IndicatorPoint struct {
	SMAShort        optional.Option[float64] `yaml:"sma_short" json:"sma_short"`
	SMALong         optional.Option[float64] `yaml:"sma_long" json:"sma_long"`
	EMAShort        optional.Option[float64] `yaml:"ema_short" json:"ema_short"`
	EMALong         optional.Option[float64] `yaml:"ema_long" json:"ema_long"`
	MACD            optional.Option[float64] `yaml:"macd" json:"macd"`
	MACDSignal      optional.Option[float64] `yaml:"macd_signal" json:"macd_signal"`
	MACDHist        optional.Option[float64] `yaml:"macd_hist" json:"macd_hist"`
	RSI             optional.Option[float64] `yaml:"rsi" json:"rsi"`
	BollingerUpper  optional.Option[float64] `yaml:"bollinger_upper" json:"bollinger_upper"`
	BollingerMiddle optional.Option[float64] `yaml:"bollinger_middle" json:"bollinger_middle"`
	BollingerLower  optional.Option[float64] `yaml:"bollinger_lower" json:"bollinger_lower"`
	StochasticK     optional.Option[float64] `yaml:"stochastic_k" json:"stochastic_k"`
	StochasticD     optional.Option[float64] `yaml:"stochastic_d" json:"stochastic_d"`
}

// IndicatorSet is the per-bar indicator table for a price series, always
// index-aligned 1:1 with the series it was computed from. It is freshly
// constructed per computation and never mutated afterwards.
type IndicatorSet struct {
	Points []IndicatorPoint
}

// Len returns the number of per-bar entries in the set.
func (s IndicatorSet) Len() int {
	return len(s.Points)
}

// At returns the indicator point at index i. It panics on out-of-range access
// the same way a slice would; callers iterate within the series bounds.
func (s IndicatorSet) At(i int) IndicatorPoint {
	return s.Points[i]
}

// Last returns the final indicator point, or None when the set is empty.
func (s IndicatorSet) Last() optional.Option[IndicatorPoint] {
	if len(s.Points) == 0 {
		return optional.None[IndicatorPoint]()
	}

	return optional.Some(s.Points[len(s.Points)-1])
}

// Prev returns the next-to-last indicator point, or None when the set has
// fewer than two entries.
func (s IndicatorSet) Prev() optional.Option[IndicatorPoint] {
	if len(s.Points) < 2 {
		return optional.None[IndicatorPoint]()
	}

	return optional.Some(s.Points[len(s.Points)-2])
}
