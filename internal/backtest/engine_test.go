package backtest

import (
	"testing"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func (suite *EngineTestSuite) SetupSuite() {
	config := DefaultConfig()
	config.RuleParams.SMALongWindow = 2
	config.RuleParams.RSIPeriod = 1

	suite.engine = NewEngine(config, nil)
}

func TestBacktestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

// setFromPoints builds an IndicatorSet aligned to the given closes.
func setFromPoints(points []types.IndicatorPoint) types.IndicatorSet {
	return types.IndicatorSet{Points: points}
}

func (suite *EngineTestSuite) TestMomentumSingleRoundTrip() {
	closes := []float64{100, 100, 100, 100, 105, 105, 110, 110}
	series := seriesFromCloses(closes)

	// One bullish cross at index 3, one bearish cross at index 6.
	points := []types.IndicatorPoint{
		smaPoint(99, 100),
		smaPoint(99, 100),
		smaPoint(99, 100),
		smaPoint(101, 100),
		smaPoint(101, 100),
		smaPoint(101, 100),
		smaPoint(99, 100),
		smaPoint(99, 100),
	}

	report := suite.engine.Run("TEST", series, setFromPoints(points), RuleMomentum)

	suite.Require().Empty(report.Err)
	suite.Require().Len(report.Trades, 1)
	suite.False(report.NoTrades)

	trade := report.Trades[0]
	// Entered at the index-3 close, exited at the index-6 close.
	suite.InDelta(100.0, trade.EntryPrice, 1e-9)
	suite.InDelta(110.0, trade.ExitPrice, 1e-9)
	suite.InDelta(10.0, trade.PnLPct, 1e-9)

	// Capital compounds once: 100000 * 1.10.
	suite.InDelta(110000.0, report.TradeStats.FinalCapital, 1e-6)
	suite.InDelta(10.0, report.TradeStats.TotalReturnPct, 1e-6)
	suite.NotEmpty(report.RunID)
	suite.Equal("momentum", report.Strategy)
}

func (suite *EngineTestSuite) TestMeanReversionRoundTrip() {
	closes := []float64{100, 100, 95, 100, 108}
	series := seriesFromCloses(closes)

	points := []types.IndicatorPoint{
		rsiPoint(50),
		rsiPoint(50),
		rsiPoint(25), // enter at close 95
		rsiPoint(50),
		rsiPoint(75), // exit at close 108
	}

	report := suite.engine.Run("TEST", series, setFromPoints(points), RuleMeanReversion)

	suite.Require().Empty(report.Err)
	suite.Require().Len(report.Trades, 1)

	trade := report.Trades[0]
	suite.InDelta(95.0, trade.EntryPrice, 1e-9)
	suite.InDelta(108.0, trade.ExitPrice, 1e-9)
	suite.Equal("mean_reversion", trade.Strategy)
}

func (suite *EngineTestSuite) TestOpenPositionAtSeriesEndDiscarded() {
	closes := []float64{100, 100, 100, 100, 120}
	series := seriesFromCloses(closes)

	points := []types.IndicatorPoint{
		smaPoint(99, 100),
		smaPoint(99, 100),
		smaPoint(99, 100),
		smaPoint(101, 100), // enter, never exits
		smaPoint(101, 100),
	}

	report := suite.engine.Run("TEST", series, setFromPoints(points), RuleMomentum)

	suite.Empty(report.Err)
	suite.Empty(report.Trades)
	suite.True(report.NoTrades)
	suite.InDelta(suite.engine.Config().InitialCapital, report.TradeStats.FinalCapital, 1e-9)
}

func (suite *EngineTestSuite) TestRunUnknownRule() {
	series := seriesFromCloses([]float64{100, 101, 102})

	report := suite.engine.Run("TEST", series, setFromPoints(make([]types.IndicatorPoint, 3)), Rule("arbitrage"))

	suite.NotEmpty(report.Err)
	suite.True(report.NoTrades)
	suite.Empty(report.Trades)
}

func (suite *EngineTestSuite) TestRunEmptySeries() {
	report := suite.engine.Run("TEST", nil, types.IndicatorSet{}, RuleMomentum)

	suite.NotEmpty(report.Err)
	suite.True(report.NoTrades)
	suite.NotEmpty(report.RunID)
}

func (suite *EngineTestSuite) TestRunMisalignedIndicatorSet() {
	series := seriesFromCloses([]float64{100, 101, 102})

	report := suite.engine.Run("TEST", series, setFromPoints(make([]types.IndicatorPoint, 2)), RuleMomentum)

	suite.NotEmpty(report.Err)
	suite.True(report.NoTrades)
}

func (suite *EngineTestSuite) TestRunWarmUpShortfall() {
	// Warm-up for momentum is 2 bars with the suite's params.
	series := seriesFromCloses([]float64{100, 101})

	report := suite.engine.Run("TEST", series, setFromPoints(make([]types.IndicatorPoint, 2)), RuleMomentum)

	suite.NotEmpty(report.Err)
	suite.True(report.NoTrades)
	// Series-level stats are still computed from the bars themselves.
	suite.NotZero(report.SeriesStats.AnnualizedReturn)
}

func TestNewEngineDefaultsNonPositiveCapital(t *testing.T) {
	engine := NewEngine(Config{InitialCapital: -5}, nil)

	assert.InDelta(t, 100000.0, engine.Config().InitialCapital, 1e-9)
}

func TestNewEngineFromYAML(t *testing.T) {
	engine, err := NewEngineFromYAML("initial_capital: 50000\nrisk_free_rate: 0.01\n", nil)
	require.NoError(t, err)

	assert.InDelta(t, 50000.0, engine.Config().InitialCapital, 1e-9)
	assert.InDelta(t, 0.01, engine.Config().RiskFreeRate, 1e-9)
}

func TestNewEngineFromYAMLInvalid(t *testing.T) {
	_, err := NewEngineFromYAML("initial_capital: [not a number", nil)
	require.Error(t, err)
}
