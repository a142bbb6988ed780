// Package indicator computes the per-bar technical indicator table for a
// price series. Every rolling computation carries incremental window state
// (running sums, Wilder smoothing, monotonic deques) so a full pass over N
// bars is O(N) regardless of window sizes.
package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// rsiNeutral is the sentinel RSI for series shorter than the RSI period.
const rsiNeutral = 50.0

// Engine computes an IndicatorSet from a PriceSeries. It holds only
// configuration; every Compute call builds a fresh set with no state shared
// across calls or tickers.
type Engine struct {
	config Config
}

// NewEngine creates an Engine after validating the configuration.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine{config: config}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compute derives the full indicator table for the series. The returned set
// is always index-aligned 1:1 with the input; entries before a window is
// satisfied are None. An empty or mis-ordered series yields an empty set and
// an error for the caller's fail-soft handling.
func (e *Engine) Compute(series types.PriceSeries) (types.IndicatorSet, error) {
	if len(series) == 0 {
		return types.IndicatorSet{Points: nil},
			errors.New(errors.ErrCodeEmptySeries, "cannot compute indicators on an empty series")
	}

	if err := series.Validate(); err != nil {
		return types.IndicatorSet{Points: nil}, err
	}

	closes := series.Closes()
	points := make([]types.IndicatorPoint, len(series))

	smaShort := rollingMean(closes, e.config.SMAShortWindow)
	smaLong := rollingMean(closes, e.config.SMALongWindow)
	emaShort := ema(closes, e.config.EMAShortSpan)
	emaLong := ema(closes, e.config.EMALongSpan)

	macd, macdSignal := e.computeMACD(closes)
	rsi := e.computeRSI(closes)
	bbUpper, bbMiddle, bbLower := e.computeBollinger(closes)
	stochK, stochD := e.computeStochastic(series)

	for i := range series {
		points[i] = types.IndicatorPoint{
			SMAShort:        smaShort[i],
			SMALong:         smaLong[i],
			EMAShort:        optional.Some(emaShort[i]),
			EMALong:         optional.Some(emaLong[i]),
			MACD:            optional.Some(macd[i]),
			MACDSignal:      optional.Some(macdSignal[i]),
			MACDHist:        optional.Some(macd[i] - macdSignal[i]),
			RSI:             rsi[i],
			BollingerUpper:  bbUpper[i],
			BollingerMiddle: bbMiddle[i],
			BollingerLower:  bbLower[i],
			StochasticK:     stochK[i],
			StochasticD:     stochD[i],
		}
	}

	return types.IndicatorSet{Points: points}, nil
}

// computeMACD returns the MACD line (EMA fast minus EMA slow) and its signal
// line (EMA of the MACD line), both defined from index 0 like their EMAs.
func (e *Engine) computeMACD(closes []float64) ([]float64, []float64) {
	fast := ema(closes, e.config.MACDFastSpan)
	slow := ema(closes, e.config.MACDSlowSpan)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}

	signal := ema(macd, e.config.MACDSignalSpan)

	return macd, signal
}

// computeRSI computes the Wilder-smoothed RSI. The first value appears at
// index period (it needs period close-to-close deltas); earlier indices are
// None. A series shorter than period+1 bars degenerates to the neutral 50
// sentinel at every index instead of erroring.
func (e *Engine) computeRSI(closes []float64) []optional.Option[float64] {
	period := e.config.RSIPeriod
	out := make([]optional.Option[float64], len(closes))

	if len(closes) < period+1 {
		for i := range out {
			out[i] = optional.Some(rsiNeutral)
		}

		return out
	}

	avgGain := 0.0
	avgLoss := 0.0

	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}

		out[i-1] = optional.None[float64]()
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = optional.Some(rsiFromAverages(avgGain, avgLoss))

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain := 0.0
		loss := 0.0

		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		// Wilder's smoothing carries the previous average forward.
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = optional.Some(rsiFromAverages(avgGain, avgLoss))
	}

	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}

// computeBollinger returns the upper, middle and lower bands, valid from
// index window-1.
func (e *Engine) computeBollinger(closes []float64) (upper, middle, lower []optional.Option[float64]) {
	window := e.config.BollingerWindow
	k := e.config.BollingerK

	middle = rollingMean(closes, window)
	std := rollingStd(closes, window)

	upper = make([]optional.Option[float64], len(closes))
	lower = make([]optional.Option[float64], len(closes))

	for i := range closes {
		if middle[i].IsNone() || std[i].IsNone() {
			upper[i] = optional.None[float64]()
			lower[i] = optional.None[float64]()

			continue
		}

		m := middle[i].Unwrap()
		s := std[i].Unwrap()
		upper[i] = optional.Some(m + k*s)
		lower[i] = optional.Some(m - k*s)
	}

	return upper, middle, lower
}

// computeStochastic returns %K and its 3-bar SMA %D. A zero high/low range
// marks %K unavailable at that bar rather than dividing by zero, and %D is
// only available when the three %K values it averages are.
func (e *Engine) computeStochastic(series types.PriceSeries) (k, d []optional.Option[float64]) {
	const dWindow = 3

	window := e.config.StochasticWindow

	lows := make([]float64, len(series))
	highs := make([]float64, len(series))

	for i, bar := range series {
		lows[i] = bar.Low
		highs[i] = bar.High
	}

	lowMin := rollingExtremum(lows, window, false)
	highMax := rollingExtremum(highs, window, true)

	k = make([]optional.Option[float64], len(series))
	d = make([]optional.Option[float64], len(series))

	for i, bar := range series {
		if lowMin[i].IsNone() || highMax[i].IsNone() {
			k[i] = optional.None[float64]()

			continue
		}

		lo := lowMin[i].Unwrap()
		hi := highMax[i].Unwrap()

		if hi == lo {
			k[i] = optional.None[float64]()

			continue
		}

		k[i] = optional.Some(100 * (bar.Close - lo) / (hi - lo))
	}

	for i := range series {
		if i < dWindow-1 {
			d[i] = optional.None[float64]()

			continue
		}

		sum := 0.0
		available := true

		for j := i - dWindow + 1; j <= i; j++ {
			if k[j].IsNone() {
				available = false

				break
			}

			sum += k[j].Unwrap()
		}

		if available {
			d[i] = optional.Some(sum / dWindow)
		} else {
			d[i] = optional.None[float64]()
		}
	}

	return k, d
}
