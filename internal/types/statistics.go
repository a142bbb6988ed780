package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TradeStats are metrics conditioned on the closed trades of a replay.
type TradeStats struct {
	// Count of all closed trades.
	TotalTrades int `yaml:"total_trades"`
	// Count of trades with positive pnl.
	WinningTrades int `yaml:"winning_trades"`
	// Count of trades with zero or negative pnl.
	LosingTrades int `yaml:"losing_trades"`
	// Mean absolute pnl per trade.
	AvgPnL float64 `yaml:"avg_pnl"`
	// Mean percentage pnl per trade.
	AvgPnLPct float64 `yaml:"avg_pnl_pct"`
	// Best single-trade pnl.
	MaxProfit float64 `yaml:"max_profit"`
	// Worst single-trade pnl.
	MaxLoss float64 `yaml:"max_loss"`
	// Mean holding period in days.
	AvgHoldingDays float64 `yaml:"avg_holding_days"`
	// Capital after compounding every closed trade.
	FinalCapital float64 `yaml:"final_capital"`
	// Total return over initial capital, in percent.
	TotalReturnPct float64 `yaml:"total_return_pct"`
	// PnLPctSharpe is mean(pnl_pct)/stddev(pnl_pct) over the trade
	// population, 0 when fewer than 2 trades. It is a dispersion ratio over
	// trades, distinct from SeriesStats.SharpeRatio which is conditioned on
	// daily returns.
	PnLPctSharpe float64 `yaml:"pnl_pct_sharpe"`
}

// SeriesStats are metrics over the full price series, independent of whether
// any trade fired.
type SeriesStats struct {
	// AnnualizedReturn is mean(daily_return) * 252.
	AnnualizedReturn float64 `yaml:"annualized_return"`
	// AnnualizedVolatility is stddev(daily_return) * sqrt(252).
	AnnualizedVolatility float64 `yaml:"annualized_volatility"`
	// SharpeRatio is (annualized_return - risk_free_rate) / annualized
	// volatility, 0 when volatility is 0.
	SharpeRatio float64 `yaml:"sharpe_ratio"`
	// MaxDrawdown is the minimum of cumulative_return/running_peak - 1,
	// always <= 0.
	MaxDrawdown float64 `yaml:"max_drawdown"`
}

// BacktestReport is the complete outcome of one replay run.
type BacktestReport struct {
	// RunID uniquely identifies this replay run.
	RunID string `yaml:"run_id"`
	// Timestamp is when the replay was executed.
	Timestamp time.Time `yaml:"timestamp"`
	// Ticker of the replayed series.
	Ticker string `yaml:"ticker"`
	// Strategy is the replay rule that was driven across the series.
	Strategy string `yaml:"strategy"`
	// Trades is the ordered ledger of closed round trips.
	Trades []Trade `yaml:"trades"`
	// TradeStats aggregates the ledger.
	TradeStats TradeStats `yaml:"trade_stats"`
	// SeriesStats aggregates the daily returns of the series itself.
	SeriesStats SeriesStats `yaml:"series_stats"`
	// NoTrades marks explicitly that the replay closed zero trades.
	NoTrades bool `yaml:"no_trades"`
	// Err carries the failure reason of a fail-soft run, empty on success.
	Err string `yaml:"error,omitempty"`
}

// WriteBacktestReports marshals reports to YAML and writes them to path.
func WriteBacktestReports(path string, reports []BacktestReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest reports to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest reports to file: %w", err)
	}

	return nil
}
