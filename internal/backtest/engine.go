// Package backtest replays a price series bar by bar through a
// single-position state machine, producing a trade ledger and aggregate
// performance statistics. Replay is strictly sequential: the FLAT/LONG
// machine and the capital compounding are order-dependent, so bars are never
// processed out of order.
package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Config holds the replay parameters.
type Config struct {
	// InitialCapital is the starting capital compounded across closed trades.
	InitialCapital float64 `yaml:"initial_capital"`
	// RiskFreeRate feeds the series-level Sharpe ratio.
	RiskFreeRate float64 `yaml:"risk_free_rate"`
	// RuleParams carries per-rule thresholds and warm-up windows.
	RuleParams RuleParams `yaml:"rule_params"`
}

// DefaultConfig returns a replay over 100k starting capital with a 2%
// risk-free rate.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 100000,
		RiskFreeRate:   0.02,
		RuleParams:     DefaultRuleParams(),
	}
}

// Engine drives replays. It holds configuration and a logger only; each Run
// constructs its state fresh, so one Engine is safe to reuse across tickers.
type Engine struct {
	config Config
	log    *logger.Logger
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(config Config, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if config.InitialCapital <= 0 {
		config.InitialCapital = DefaultConfig().InitialCapital
	}

	return &Engine{config: config, log: log}
}

// NewEngineFromYAML creates an Engine from a YAML configuration document.
func NewEngineFromYAML(configYAML string, log *logger.Logger) (*Engine, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(configYAML), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse backtest config", err)
	}

	return NewEngine(config, log), nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run replays the series through the rule's state machine. Any computation
// fault (empty series, misaligned indicator set, unknown rule) yields a
// zeroed report with the error marker set, never a panic or a partial
// result.
func (e *Engine) Run(ticker string, series types.PriceSeries, set types.IndicatorSet, rule Rule) types.BacktestReport {
	report := types.BacktestReport{
		RunID:       uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Ticker:      ticker,
		Strategy:    string(rule),
		Trades:      nil,
		TradeStats:  computeTradeStats(nil, e.config.InitialCapital, e.config.InitialCapital),
		SeriesStats: types.SeriesStats{AnnualizedReturn: 0, AnnualizedVolatility: 0, SharpeRatio: 0, MaxDrawdown: 0},
		NoTrades:    true,
		Err:         "",
	}

	if !rule.Valid() {
		report.Err = errors.Newf(errors.ErrCodeInvalidInput, "unknown replay rule %q", rule).Error()

		return report
	}

	if len(series) == 0 {
		report.Err = errors.New(errors.ErrCodeEmptySeries, "cannot replay an empty series").Error()

		return report
	}

	if set.Len() != len(series) {
		report.Err = errors.Newf(errors.ErrCodeInvalidInput,
			"indicator set length %d does not match series length %d", set.Len(), len(series)).Error()

		return report
	}

	warmUp := rule.WarmUp(e.config.RuleParams)
	if len(series) <= warmUp {
		report.Err = errors.NewInsufficientHistoryErrorf(warmUp+1, len(series), ticker,
			"series of %d bars is shorter than the %d-bar warm-up", len(series), warmUp).Error()
		report.SeriesStats = computeSeriesStats(series, e.config.RiskFreeRate)

		return report
	}

	trades, finalCapital := e.replay(series, set, rule, warmUp)

	report.Trades = trades
	report.NoTrades = len(trades) == 0
	report.TradeStats = computeTradeStats(trades, e.config.InitialCapital, finalCapital)
	report.SeriesStats = computeSeriesStats(series, e.config.RiskFreeRate)

	e.log.Debug("replay finished",
		zap.String("ticker", ticker),
		zap.String("rule", string(rule)),
		zap.Int("trades", len(trades)),
		zap.Float64("final_capital", finalCapital),
	)

	return report
}

// replay walks the bars sequentially, feeding each rule decision into the
// state machine and compounding capital multiplicatively on every close.
// Decimal arithmetic keeps long compounding chains exact.
func (e *Engine) replay(series types.PriceSeries, set types.IndicatorSet, rule Rule, warmUp int) ([]types.Trade, float64) {
	position := NewPosition()
	trades := make([]types.Trade, 0)
	capital := decimal.NewFromFloat(e.config.InitialCapital)
	hundred := decimal.NewFromInt(100)

	for i := warmUp; i < len(series); i++ {
		action := rule.Evaluate(prevPoint(set, i), set.At(i), position.State, e.config.RuleParams)

		next, closed := position.Apply(action, series[i], string(rule))
		position = next

		if closed.IsSome() {
			trade := closed.Unwrap()
			trades = append(trades, trade)

			factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(trade.PnLPct).Div(hundred))
			capital = capital.Mul(factor)
		}
	}

	finalCapital, _ := capital.Float64()

	return trades, finalCapital
}

// prevPoint returns the indicator point before index i, None at the series
// start.
func prevPoint(set types.IndicatorSet, i int) optional.Option[types.IndicatorPoint] {
	if i == 0 {
		return optional.None[types.IndicatorPoint]()
	}

	return optional.Some(set.At(i - 1))
}
