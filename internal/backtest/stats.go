package backtest

import (
	"math"

	"github.com/rxtech-lab/argo-screener/internal/types"
)

// tradingDaysPerYear annualizes daily returns.
const tradingDaysPerYear = 252

// computeTradeStats aggregates the closed-trade ledger. With an empty ledger
// it returns zeroed stats with FinalCapital at the initial capital.
func computeTradeStats(trades []types.Trade, initialCapital, finalCapital float64) types.TradeStats {
	stats := types.TradeStats{
		TotalTrades:    len(trades),
		WinningTrades:  0,
		LosingTrades:   0,
		AvgPnL:         0,
		AvgPnLPct:      0,
		MaxProfit:      0,
		MaxLoss:        0,
		AvgHoldingDays: 0,
		FinalCapital:   finalCapital,
		TotalReturnPct: 0,
		PnLPctSharpe:   0,
	}

	if initialCapital > 0 {
		stats.TotalReturnPct = (finalCapital - initialCapital) / initialCapital * 100
	}

	if len(trades) == 0 {
		return stats
	}

	sumPnL := 0.0
	sumPnLPct := 0.0
	sumHolding := 0.0
	stats.MaxProfit = trades[0].PnL
	stats.MaxLoss = trades[0].PnL

	for _, trade := range trades {
		if trade.PnL > 0 {
			stats.WinningTrades++
		} else {
			stats.LosingTrades++
		}

		sumPnL += trade.PnL
		sumPnLPct += trade.PnLPct
		sumHolding += float64(trade.HoldingPeriodDays)

		if trade.PnL > stats.MaxProfit {
			stats.MaxProfit = trade.PnL
		}

		if trade.PnL < stats.MaxLoss {
			stats.MaxLoss = trade.PnL
		}
	}

	n := float64(len(trades))
	stats.AvgPnL = sumPnL / n
	stats.AvgPnLPct = sumPnLPct / n
	stats.AvgHoldingDays = sumHolding / n
	stats.PnLPctSharpe = pnlPctDispersionRatio(trades, stats.AvgPnLPct)

	return stats
}

// pnlPctDispersionRatio is mean(pnl_pct)/stddev(pnl_pct) over the trade
// population, 0 when fewer than 2 trades or when the dispersion is 0. It is
// a different population than the daily-return Sharpe and deliberately kept
// as a separate metric.
func pnlPctDispersionRatio(trades []types.Trade, mean float64) float64 {
	if len(trades) < 2 {
		return 0
	}

	sumSq := 0.0
	for _, trade := range trades {
		diff := trade.PnLPct - mean
		sumSq += diff * diff
	}

	std := math.Sqrt(sumSq / float64(len(trades)))
	if std == 0 {
		return 0
	}

	return mean / std
}

// computeSeriesStats derives annualized return, volatility, Sharpe and max
// drawdown from the daily close-to-close returns of the series itself,
// independent of any trades. Fewer than 2 bars yields all zeros.
func computeSeriesStats(series types.PriceSeries, riskFreeRate float64) types.SeriesStats {
	stats := types.SeriesStats{
		AnnualizedReturn:     0,
		AnnualizedVolatility: 0,
		SharpeRatio:          0,
		MaxDrawdown:          0,
	}

	if len(series) < 2 {
		return stats
	}

	returns := make([]float64, 0, len(series)-1)

	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		if prev == 0 {
			continue
		}

		returns = append(returns, series[i].Close/prev-1)
	}

	if len(returns) == 0 {
		return stats
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}

	variance /= float64(len(returns))

	stats.AnnualizedReturn = mean * tradingDaysPerYear
	stats.AnnualizedVolatility = math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)

	if stats.AnnualizedVolatility != 0 {
		stats.SharpeRatio = (stats.AnnualizedReturn - riskFreeRate) / stats.AnnualizedVolatility
	}

	stats.MaxDrawdown = maxDrawdown(returns)

	return stats
}

// maxDrawdown is the minimum of cumulative_return/running_peak - 1 across
// the return path; 0 for a path that never declines from its peak.
func maxDrawdown(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	minDrawdown := 0.0

	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}

		drawdown := cumulative/peak - 1
		if drawdown < minDrawdown {
			minDrawdown = drawdown
		}
	}

	return minDrawdown
}
