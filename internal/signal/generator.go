// Package signal fuses the latest indicator values into a directional
// signal with a bounded confidence score. Cross detection is edge-triggered:
// a cross tag fires only on the single bar where the short/long ordering
// flips, never again while the ordering persists.
package signal

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// recentVolumeBars is how many trailing bars form the "recent" volume
// average compared against the long-run average.
const recentVolumeBars = 5

// Generator turns indicator points into signals. It is stateless; edge
// detection uses the caller-supplied previous point rather than memory.
type Generator struct {
	config Config
}

// NewGenerator creates a Generator after validating the configuration.
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Generator{config: config}, nil
}

// Generate fuses the current indicator point (with the previous point for
// edge detection) and the price series (for close position and volume) into
// a Signal. prev is None on the first evaluated bar, which suppresses cross
// tags but none of the state classifications.
func (g *Generator) Generate(prev optional.Option[types.IndicatorPoint], curr types.IndicatorPoint, series types.PriceSeries) types.Signal {
	sig := types.Signal{
		Trend:             types.TrendBearish,
		RSIState:          types.RSIStateNeutral,
		MACDState:         types.MACDStateBearish,
		BollingerPosition: types.BollingerPositionMiddle,
		Confidence:        0,
		FiredTags:         nil,
	}

	confidence := 0.0

	confidence += g.applyTrend(&sig, curr, series)
	confidence += g.applyCross(&sig, prev, curr)
	confidence += g.applyRSI(&sig, curr)
	confidence += g.applyMACD(&sig, curr)
	confidence += g.applyVolume(&sig, series)
	g.applyBollinger(&sig, curr, series)

	sig.Confidence = clamp(confidence, -1, 1)

	return sig
}

// applyTrend classifies the SMA ordering and contributes the strong or weak
// trend weight depending on the spread relative to the mean close.
func (g *Generator) applyTrend(sig *types.Signal, curr types.IndicatorPoint, series types.PriceSeries) float64 {
	if curr.SMAShort.IsNone() || curr.SMALong.IsNone() {
		return 0
	}

	short := curr.SMAShort.Unwrap()
	long := curr.SMALong.Unwrap()

	meanClose := series.MeanClose()

	strength := 0.0
	if meanClose > 0 {
		spread := short - long
		if spread < 0 {
			spread = -spread
		}

		strength = spread / meanClose * 100
	}

	strong := strength > g.config.Thresholds.TrendStrengthMin

	if short > long {
		sig.Trend = types.TrendBullish

		if strong {
			sig.FiredTags = append(sig.FiredTags, types.TagUptrend)

			return g.config.Weights.StrongTrend
		}

		sig.FiredTags = append(sig.FiredTags, types.TagWeakUptrend)

		return g.config.Weights.WeakTrend
	}

	sig.Trend = types.TrendBearish

	if strong {
		sig.FiredTags = append(sig.FiredTags, types.TagDowntrend)

		return -g.config.Weights.StrongTrend
	}

	sig.FiredTags = append(sig.FiredTags, types.TagWeakDowntrend)

	return -g.config.Weights.WeakTrend
}

// applyCross fires the edge-triggered cross tags. A bullish cross needs
// prev_short <= prev_long and curr_short > curr_long; the bearish cross is
// symmetric. The tags carry no confidence weight of their own; the trend
// contribution already prices the resulting ordering.
func (g *Generator) applyCross(sig *types.Signal, prev optional.Option[types.IndicatorPoint], curr types.IndicatorPoint) float64 {
	if prev.IsNone() {
		return 0
	}

	p := prev.Unwrap()

	if p.SMAShort.IsNone() || p.SMALong.IsNone() || curr.SMAShort.IsNone() || curr.SMALong.IsNone() {
		return 0
	}

	prevShort := p.SMAShort.Unwrap()
	prevLong := p.SMALong.Unwrap()
	currShort := curr.SMAShort.Unwrap()
	currLong := curr.SMALong.Unwrap()

	if prevShort <= prevLong && currShort > currLong {
		sig.FiredTags = append(sig.FiredTags, types.TagBullishCross)
	} else if prevShort >= prevLong && currShort < currLong {
		sig.FiredTags = append(sig.FiredTags, types.TagBearishCross)
	}

	return 0
}

func (g *Generator) applyRSI(sig *types.Signal, curr types.IndicatorPoint) float64 {
	if curr.RSI.IsNone() {
		return 0
	}

	rsi := curr.RSI.Unwrap()

	switch {
	case rsi < g.config.Thresholds.RSIOversold:
		sig.RSIState = types.RSIStateOversold
		sig.FiredTags = append(sig.FiredTags, types.TagOversold)

		return g.config.Weights.Oversold
	case rsi > g.config.Thresholds.RSIOverbought:
		sig.RSIState = types.RSIStateOverbought
		sig.FiredTags = append(sig.FiredTags, types.TagOverbought)

		return -g.config.Weights.Overbought
	default:
		sig.RSIState = types.RSIStateNeutral

		return 0
	}
}

func (g *Generator) applyMACD(sig *types.Signal, curr types.IndicatorPoint) float64 {
	if curr.MACD.IsNone() || curr.MACDSignal.IsNone() {
		return 0
	}

	if curr.MACD.Unwrap() > curr.MACDSignal.Unwrap() {
		sig.MACDState = types.MACDStateBullish
		sig.FiredTags = append(sig.FiredTags, types.TagBullishMomentum)

		return g.config.Weights.Momentum
	}

	sig.MACDState = types.MACDStateBearish
	sig.FiredTags = append(sig.FiredTags, types.TagBearishMomentum)

	return -g.config.Weights.Momentum
}

// applyVolume contributes the spike weight when the recent 5-bar average
// volume exceeds the long-run average by the configured margin.
func (g *Generator) applyVolume(sig *types.Signal, series types.PriceSeries) float64 {
	if len(series) < recentVolumeBars {
		return 0
	}

	longRun := series.MeanVolume()
	if longRun <= 0 {
		return 0
	}

	recent := 0.0
	for _, bar := range series[len(series)-recentVolumeBars:] {
		recent += bar.Volume
	}

	recent /= recentVolumeBars

	if recent > longRun*(1+g.config.Thresholds.VolumeSpikeMargin) {
		sig.FiredTags = append(sig.FiredTags, types.TagVolumeSpike)

		return g.config.Weights.VolumeSpike
	}

	return 0
}

func (g *Generator) applyBollinger(sig *types.Signal, curr types.IndicatorPoint, series types.PriceSeries) {
	if len(series) == 0 || curr.BollingerUpper.IsNone() || curr.BollingerLower.IsNone() {
		return
	}

	close := series[len(series)-1].Close

	switch {
	case close > curr.BollingerUpper.Unwrap():
		sig.BollingerPosition = types.BollingerPositionUpper
	case close < curr.BollingerLower.Unwrap():
		sig.BollingerPosition = types.BollingerPositionLower
	default:
		sig.BollingerPosition = types.BollingerPositionMiddle
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
