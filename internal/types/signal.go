package types

type Trend string

type RSIState string

type MACDState string

type BollingerPosition string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
)

const (
	RSIStateOversold   RSIState = "oversold"
	RSIStateOverbought RSIState = "overbought"
	RSIStateNeutral    RSIState = "neutral"
)

const (
	MACDStateBullish MACDState = "bullish"
	MACDStateBearish MACDState = "bearish"
)

const (
	BollingerPositionUpper  BollingerPosition = "upper"
	BollingerPositionLower  BollingerPosition = "lower"
	BollingerPositionMiddle BollingerPosition = "middle"
)

// Tags carried in Signal.FiredTags, one per confidence contribution that
// applied. They exist for explainability and for asserting in tests which
// branches fired.
const (
	TagOversold        string = "oversold"
	TagOverbought      string = "overbought"
	TagBullishMomentum string = "bullish_momentum"
	TagBearishMomentum string = "bearish_momentum"
	TagVolumeSpike     string = "volume_spike"
	TagUptrend         string = "uptrend"
	TagWeakUptrend     string = "weak_uptrend"
	TagDowntrend       string = "downtrend"
	TagWeakDowntrend   string = "weak_downtrend"
	TagBullishCross    string = "sma_bullish_cross"
	TagBearishCross    string = "sma_bearish_cross"
)

// Signal is the fused directional reading of the latest indicator values.
type Signal struct {
	// Trend is the SMA short/long ordering state, not the cross edge.
	Trend Trend `yaml:"trend" json:"trend"`
	// RSIState classifies the latest RSI against the configured thresholds.
	RSIState RSIState `yaml:"rsi_state" json:"rsi_state"`
	// MACDState is bullish when MACD is above its signal line.
	MACDState MACDState `yaml:"macd_state" json:"macd_state"`
	// BollingerPosition locates the close relative to the bands.
	BollingerPosition BollingerPosition `yaml:"bollinger_position" json:"bollinger_position"`
	// Confidence is the weighted sum of contributions, clamped to [-1, 1].
	Confidence float64 `yaml:"confidence" json:"confidence"`
	// FiredTags lists which contributions applied.
	FiredTags []string `yaml:"fired_tags" json:"fired_tags"`
}

// HasTag reports whether the given contribution tag fired.
func (s Signal) HasTag(tag string) bool {
	for _, t := range s.FiredTags {
		if t == tag {
			return true
		}
	}

	return false
}
