// Package analyzer orchestrates one analysis pass per ticker: indicators,
// then the fused signal, then strategy quotes and the risk decision. It owns
// no logic of its own; each stage stays independently callable.
package analyzer

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/config"
	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/options"
	"github.com/rxtech-lab/argo-screener/internal/risk"
	"github.com/rxtech-lab/argo-screener/internal/signal"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"go.uber.org/zap"
)

// Input carries everything known about one ticker at analysis time. Chain,
// Sentiment and Portfolio are optional; stages that need a missing input are
// skipped rather than failed.
type Input struct {
	Ticker    string
	Series    types.PriceSeries
	Chain     optional.Option[types.OptionChain]
	Sentiment optional.Option[float64]
	Portfolio optional.Option[types.Portfolio]
}

// Result is the per-ticker outcome. A fault in any stage leaves the zero
// value for that stage and sets Err; one ticker's fault never aborts a run
// over the rest of the universe.
type Result struct {
	Ticker        string                `yaml:"ticker" json:"ticker"`
	Signal        types.Signal          `yaml:"signal" json:"signal"`
	Quotes        []types.StrategyQuote `yaml:"quotes,omitempty" json:"quotes,omitempty"`
	Approved      bool                  `yaml:"approved" json:"approved"`
	SuggestedSize float64               `yaml:"suggested_size" json:"suggested_size"`
	Err           string                `yaml:"error,omitempty" json:"error,omitempty"`
}

// Analyzer wires the per-stage engines together.
type Analyzer struct {
	indicators *indicator.Engine
	signals    *signal.Generator
	selector   *options.Selector
	limits     types.RiskLimits
	log        *logger.Logger
}

// NewAnalyzer builds an Analyzer from the screener config. Stage configs are
// validated by their own constructors.
func NewAnalyzer(cfg config.Config, log *logger.Logger) (*Analyzer, error) {
	engine, err := indicator.NewEngine(cfg.Indicator)
	if err != nil {
		return nil, err
	}

	generator, err := signal.NewGenerator(cfg.Signal)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Analyzer{
		indicators: engine,
		signals:    generator,
		selector:   options.NewSelector(),
		limits:     cfg.Risk,
		log:        log,
	}, nil
}

// Analyze runs the full pipeline for one ticker.
func (a *Analyzer) Analyze(input Input) Result {
	result := Result{
		Ticker:        input.Ticker,
		Signal:        types.Signal{},
		Quotes:        nil,
		Approved:      false,
		SuggestedSize: 0,
		Err:           "",
	}

	set, err := a.indicators.Compute(input.Series)
	if err != nil {
		result.Err = err.Error()
		a.log.Warn("indicator computation failed",
			zap.String("ticker", input.Ticker),
			zap.Error(err),
		)

		return result
	}

	last := set.Last()
	if last.IsNone() {
		return result
	}

	result.Signal = a.signals.Generate(set.Prev(), last.Unwrap(), input.Series)

	if input.Chain.IsSome() && input.Sentiment.IsSome() {
		spot := input.Series[len(input.Series)-1].Close
		result.Quotes = a.selector.Select(result.Signal, input.Sentiment.Unwrap(), input.Chain.Unwrap(), spot)
	}

	if input.Portfolio.IsSome() {
		a.applyRisk(&result, input)
	}

	a.log.Debug("ticker analyzed",
		zap.String("ticker", input.Ticker),
		zap.Float64("confidence", result.Signal.Confidence),
		zap.Int("quotes", len(result.Quotes)),
		zap.Bool("approved", result.Approved),
	)

	return result
}

// AnalyzeAll runs the pipeline over a universe sequentially. Per-ticker
// faults are captured in the corresponding Result.
func (a *Analyzer) AnalyzeAll(inputs []Input) []Result {
	results := make([]Result, 0, len(inputs))
	for _, input := range inputs {
		results = append(results, a.Analyze(input))
	}

	return results
}

// applyRisk sizes a candidate at the last close with a stop 5% below it and
// records the risk verdict. The suggested size is floored to whole shares.
func (a *Analyzer) applyRisk(result *Result, input Input) {
	portfolio := input.Portfolio.Unwrap()
	price := input.Series[len(input.Series)-1].Close

	size := math.Floor(risk.CalculatePositionSize(portfolio, a.limits, price))
	if size <= 0 {
		return
	}

	candidate := types.TradeCandidate{
		Ticker:   input.Ticker,
		Action:   types.TradeActionBuy,
		Price:    price,
		Quantity: size,
		StopLoss: price * 0.95,
	}

	result.SuggestedSize = size
	result.Approved = risk.ValidateTrade(candidate, portfolio, a.limits)
}
