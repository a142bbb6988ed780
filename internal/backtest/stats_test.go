package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestComputeTradeStatsEmpty(t *testing.T) {
	stats := computeTradeStats(nil, 100000, 100000)

	assert.Equal(t, 0, stats.TotalTrades)
	assert.InDelta(t, 100000.0, stats.FinalCapital, 1e-9)
	assert.InDelta(t, 0.0, stats.TotalReturnPct, 1e-9)
	assert.InDelta(t, 0.0, stats.PnLPctSharpe, 1e-9)
}

func TestComputeTradeStats(t *testing.T) {
	trades := []types.Trade{
		{PnL: 10, PnLPct: 10, HoldingPeriodDays: 5},
		{PnL: -4, PnLPct: -4, HoldingPeriodDays: 3},
		{PnL: 6, PnLPct: 6, HoldingPeriodDays: 10},
	}

	stats := computeTradeStats(trades, 100000, 112000)

	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
	assert.InDelta(t, 4.0, stats.AvgPnL, 1e-9)
	assert.InDelta(t, 4.0, stats.AvgPnLPct, 1e-9)
	assert.InDelta(t, 10.0, stats.MaxProfit, 1e-9)
	assert.InDelta(t, -4.0, stats.MaxLoss, 1e-9)
	assert.InDelta(t, 6.0, stats.AvgHoldingDays, 1e-9)
	assert.InDelta(t, 12.0, stats.TotalReturnPct, 1e-9)

	// Population stddev of {10,-4,6} around 4 is sqrt(104/3).
	expected := 4.0 / math.Sqrt(104.0/3.0)
	assert.InDelta(t, expected, stats.PnLPctSharpe, 1e-9)
}

func TestComputeTradeStatsBreakEvenCountsAsLoss(t *testing.T) {
	trades := []types.Trade{{PnL: 0, PnLPct: 0}}

	stats := computeTradeStats(trades, 100000, 100000)

	assert.Equal(t, 0, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
}

func TestPnLPctDispersionRatioDegenerate(t *testing.T) {
	// Single trade: no dispersion to divide by.
	one := []types.Trade{{PnLPct: 5}}
	assert.InDelta(t, 0.0, pnlPctDispersionRatio(one, 5), 1e-9)

	// Identical trades: zero dispersion.
	same := []types.Trade{{PnLPct: 5}, {PnLPct: 5}}
	assert.InDelta(t, 0.0, pnlPctDispersionRatio(same, 5), 1e-9)
}

func seriesFromCloses(closes []float64) types.PriceSeries {
	series := make(types.PriceSeries, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, close := range closes {
		series[i] = types.PriceBar{
			Time:   start.AddDate(0, 0, i),
			Open:   close,
			High:   close,
			Low:    close,
			Close:  close,
			Volume: 1000,
		}
	}

	return series
}

func TestComputeSeriesStatsShortSeries(t *testing.T) {
	stats := computeSeriesStats(seriesFromCloses([]float64{100}), 0.02)

	assert.InDelta(t, 0.0, stats.AnnualizedReturn, 1e-9)
	assert.InDelta(t, 0.0, stats.SharpeRatio, 1e-9)
}

func TestComputeSeriesStatsConstantGrowth(t *testing.T) {
	// Doubling every day gives identical returns with exactly zero variance:
	// Sharpe stays 0 instead of dividing by zero.
	stats := computeSeriesStats(seriesFromCloses([]float64{100, 200, 400, 800}), 0.02)

	assert.InDelta(t, 1.0*252, stats.AnnualizedReturn, 1e-9)
	assert.InDelta(t, 0.0, stats.AnnualizedVolatility, 1e-9)
	assert.InDelta(t, 0.0, stats.SharpeRatio, 1e-9)
	assert.False(t, math.IsNaN(stats.SharpeRatio))
	assert.InDelta(t, 0.0, stats.MaxDrawdown, 1e-9)
}

func TestComputeSeriesStatsVolatilePath(t *testing.T) {
	stats := computeSeriesStats(seriesFromCloses([]float64{100, 110, 55, 66}), 0.02)

	// Returns are +10%, -50%, +20%; cumulative trough 0.605 against peak 1.1.
	assert.InDelta(t, -0.5, stats.MaxDrawdown, 1e-9)
	assert.Greater(t, stats.AnnualizedVolatility, 0.0)
	assert.False(t, math.IsNaN(stats.SharpeRatio))
}

func TestMaxDrawdownNeverPositive(t *testing.T) {
	assert.InDelta(t, 0.0, maxDrawdown([]float64{0.1, 0.2, 0.05}), 1e-9)
	assert.InDelta(t, -0.5, maxDrawdown([]float64{0.1, -0.5, 0.2}), 1e-9)
}
